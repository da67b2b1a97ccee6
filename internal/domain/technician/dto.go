// internal/domain/technician/dto.go
package technician

type CreateRequest struct {
	Name           string  `json:"name" binding:"required,min=2,max=100"`
	Email          string  `json:"email" binding:"required,email,max=100"`
	Phone          string  `json:"phone" binding:"required,max=20"`
	Specialization string  `json:"specialization" binding:"max=100"`
	Salary         float64 `json:"salary" binding:"omitempty,gte=0"`
}

type UpdateRequest struct {
	Phone          *string  `json:"phone" binding:"omitempty,max=20"`
	Specialization *string  `json:"specialization" binding:"omitempty,max=100"`
	Status         *string  `json:"status" binding:"omitempty,oneof=available busy off-duty"`
	Salary         *float64 `json:"salary" binding:"omitempty,gte=0"`
}

type ListFilters struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ListResponse struct {
	Technicians []Technician `json:"technicians"`
	Total       int64        `json:"total"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
	TotalPages  int          `json:"total_pages"`
}

type ProfileResponse struct {
	Profile Technician `json:"profile"`
	Stats   Stats      `json:"stats"`
}
