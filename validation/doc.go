// Package validation provides input validation built on go-playground/validator.
//
// Struct tag validation covers per-item parameters:
//
//	type Params struct {
//	    AudioURL string `json:"audioUrl" validate:"required_if=AudioSource url,omitempty,url"`
//	}
//	err := validation.Validate(params)
//
// Checks that span several fields use the collecting Validator:
//
//	v := validation.New()
//	v.Custom(min <= max, "diarizationMaxSpeakers", "must not be below diarizationMinSpeakers")
//	err := v.Validate()
package validation
