package dto

type LoginRequest struct {
	Login    string `json:"login" validate:"notblank,max=64"`
	Password string `json:"password" validate:"notblank"`
}

// TogglePermissionRequest flips one checkbox of the permission matrix.
type TogglePermissionRequest struct {
	Section string `json:"section" validate:"required,section"`
	Field   string `json:"field" validate:"required,oneof=view edit delete"`
	Checked bool   `json:"checked"`
}

// UpdateFieldsRequest edits the draft's scalar fields. A blank name is
// accepted here and rejected on save.
type UpdateFieldsRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type SetNameRequest struct {
	Name string `json:"name" validate:"max=100"`
}

type SubmitRequest struct {
	AddAnother bool `json:"add_another"`
}
