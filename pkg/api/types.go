package api

import (
	"github.com/go-playground/validator/v10"

	"rulewatch/pkg/validate"
)

// requestValidate checks request bodies after JSON binding. The custom
// "interval" rule accepts strings like "30s" or "1d".
var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New()
	_ = requestValidate.RegisterValidation("interval", func(fl validator.FieldLevel) bool {
		return validate.IsInterval(fl.Field().String())
	})
}

// FindStatusesRequest asks for the recent execution history of a set of rules.
type FindStatusesRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,required"`
}

// StatusReportRequest is posted by rule executors after each run.
type StatusReportRequest struct {
	RuleID           string `json:"ruleId" validate:"required"`
	Status           string `json:"status" validate:"required,oneof=succeeded failed 'going to run' 'partial failure'"`
	Message          string `json:"message,omitempty"`
	Gap              string `json:"gap,omitempty" validate:"omitempty,interval"`
	SearchDurationMs int64  `json:"searchDurationMs,omitempty" validate:"gte=0"`
	IndexDurationMs  int64  `json:"indexDurationMs,omitempty" validate:"gte=0"`
}

// AnnotationSearchRequest narrows annotations by job and time range.
type AnnotationSearchRequest struct {
	JobIDs         []string `json:"jobIds" validate:"required,min=1,dive,required"`
	EarliestMs     int64    `json:"earliestMs,omitempty" validate:"gte=0"`
	LatestMs       int64    `json:"latestMs,omitempty" validate:"gte=0"`
	MaxAnnotations int      `json:"maxAnnotations,omitempty" validate:"omitempty,gte=1,lte=500"`
}

// AnnotationUpsertRequest creates (no ID) or updates (with ID) an annotation.
type AnnotationUpsertRequest struct {
	ID        string `json:"id,omitempty"`
	JobID     string `json:"jobId" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Event     string `json:"event,omitempty" validate:"omitempty,oneof=user delayed_data model_change"`
	StartTime int64  `json:"startTime" validate:"required,gt=0"`
	EndTime   int64  `json:"endTime,omitempty" validate:"omitempty,gte=0"`
}
