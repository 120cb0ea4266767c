package kundaliController

import "github.com/admin/kundali-service/internal/domain"

// dataBody успешный ответ
type dataBody struct {
	Data any `json:"data"`
}

// RegenerateRequest тело POST /saved-charts/:id/generate, может отсутствовать
type RegenerateRequest struct {
	Language string `json:"language"`
}

// viewStateBody состояние сессии с локализованным текстом отказа
type viewStateBody struct {
	domain.ViewState
	Message string `json:"message,omitempty"`
}
