package setting

import "context"

// SettingRepository defines data access methods for company settings.
type SettingRepository interface {
	Get(ctx context.Context, companyID string, key string) (Setting, error)
	List(ctx context.Context, companyID string) ([]Setting, error)
	Upsert(ctx context.Context, s Setting) (Setting, error)
	Delete(ctx context.Context, companyID string, key string) error
}
