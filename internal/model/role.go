package model

// Role 岗位角色表（服务员 / 厨师 / 吧台等）— 对应 roles
type Role struct {
	RoleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	Name   string `gorm:"type:varchar(50);uniqueIndex;not null"          json:"name"`
	BaseModel
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }
