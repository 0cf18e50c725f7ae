package setting

import "errors"

var (
	ErrSettingNotFound  = errors.New("setting not found")
	ErrInvalidValueType = errors.New("invalid setting value type")
	ErrValueParse       = errors.New("setting value cannot be parsed as its declared type")
)
