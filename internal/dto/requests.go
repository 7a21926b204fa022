package dto

// FormPatchRequest sets one field of a stored form.
type FormPatchRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}
