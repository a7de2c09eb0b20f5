package model

// Section 餐厅区域表（大厅 / 露台 / 吧台等）— 对应 sections
type Section struct {
	SectionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	Name      string `gorm:"type:varchar(50);uniqueIndex;not null"          json:"name"`
	BaseModel
}

// TableName 指定表名
func (Section) TableName() string { return "sections" }
