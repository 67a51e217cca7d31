package settings

type UpsertSettingRequest struct {
	Value    string `json:"value" validate:"max=500"`
	Category string `json:"category,omitempty" validate:"omitempty,max=50"`
}
