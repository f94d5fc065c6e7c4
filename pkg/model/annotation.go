package model

import "time"

// Annotation is a user note attached to a monitored job over a time span.
type Annotation struct {
	ID         string    `json:"id,omitempty"`
	JobID      string    `json:"jobId"`
	Text       string    `json:"text"`
	Event      string    `json:"event,omitempty"` // user/delayed_data/model_change
	StartTime  int64     `json:"startTime"`       // epoch ms
	EndTime    int64     `json:"endTime,omitempty"`
	CreatedBy  string    `json:"createdBy,omitempty"`
	ModifiedBy string    `json:"modifiedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	ModifiedAt time.Time `json:"modifiedAt,omitempty"`
}

// AnnotationSearch carries the criteria accepted by the search endpoint.
type AnnotationSearch struct {
	JobIDs         []string `json:"jobIds"`
	EarliestMs     int64    `json:"earliestMs,omitempty"`
	LatestMs       int64    `json:"latestMs,omitempty"`
	MaxAnnotations int      `json:"maxAnnotations,omitempty"`
}
