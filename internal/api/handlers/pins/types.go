package pins

import "github.com/5w1tchy/pinguard/internal/pin"

type validateRequest struct {
	PIN          string           `json:"pin"`
	Demographics pin.Demographics `json:"demographics"`
}

type batchRequest struct {
	Items []validateRequest `json:"items"`
}

type batchResponse struct {
	Results []pin.Result `json:"results"`
}
