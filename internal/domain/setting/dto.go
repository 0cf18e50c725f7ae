package setting

import "time"

type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`
	UpdatedAt time.Time `json:"updated_at"`
}

func MapSettingResponse(s Setting) SettingResponse {
	return SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		Type:      string(s.Type),
		UpdatedAt: s.UpdatedAt,
	}
}
