package domain

// Authority 权限；name 即主键，由调用方给定而不是服务端生成
type Authority struct {
	Name string `json:"name" db:"name" validate:"required,max=50"`
}
