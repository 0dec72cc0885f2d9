// Package entity 定义领域实体
package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice 以 jsonb 形式持久化的字符串切片
type StringSlice []string

// Value 实现 driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for StringSlice: %T", value)
	}
}
