package dto

// ── Belge DTO ──

// UploadDocumentRequest belge yükleme form alanları (dosya ayrıca "file" alanında gelir)
type UploadDocumentRequest struct {
	Title      string `form:"title"       binding:"required,min=2,max=200"`
	Category   string `form:"category"    binding:"required,oneof=contract payslip certificate policy identity other"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

// DocumentListRequest belge listesi sorgu parametreleri
type DocumentListRequest struct {
	PaginationRequest
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Category   string `form:"category"    binding:"omitempty,oneof=contract payslip certificate policy identity other"`
}

// DocumentResponse belge yanıtı
type DocumentResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
	CreatedAt  string `json:"created_at"`
}
