package handler

type instrumentRequest struct {
	Name         string  `json:"name"          validate:"required"`
	Symbol       string  `json:"symbol"        validate:"required,uppercase,min=2,max=6"`
	CurrentPrice float64 `json:"current_price" validate:"required,gt=0"`
}

type errorResponse struct {
	Error string `json:"error"`
}
