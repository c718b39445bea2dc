package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

// Address is the structured result of a postal-code lookup, used only to
// prefill the ordering form. Customer-submitted addresses are never
// validated against it.
type Address struct {
	Cep          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// AddressLookup resolves a Brazilian CEP to a structured address.
// A nil result with a nil error means the CEP is unknown.
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// ViaCEPClient queries the public ViaCEP API.
type ViaCEPClient struct {
	BaseURL string
	Client  *http.Client
}

func NewViaCEPClient() *ViaCEPClient {
	return &ViaCEPClient{
		BaseURL: "https://viacep.com.br/ws",
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (v *ViaCEPClient) Lookup(ctx context.Context, cep string) (*Address, error) {
	if !cepPattern.MatchString(cep) {
		return nil, fmt.Errorf("invalid cep format: %q", cep)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", v.BaseURL, cep), nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep returned status %d", resp.StatusCode)
	}

	var body struct {
		Cep        string `json:"cep"`
		Logradouro string `json:"logradouro"`
		Bairro     string `json:"bairro"`
		Localidade string `json:"localidade"`
		UF         string `json:"uf"`
		Erro       bool   `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Erro {
		return nil, nil
	}

	return &Address{
		Cep:          body.Cep,
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
