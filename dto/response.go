package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
// Details 는 검증 실패 시 필드별 메시지를 담는다.
type ErrorResponseDTO struct {
	Error   string            `json:"error" example:"validation_failed"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponseDTO는 /health 응답 형식이다.
type HealthResponseDTO struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}
