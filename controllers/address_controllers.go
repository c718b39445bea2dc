package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedidopronto/delivery-app/services"
	"github.com/pedidopronto/delivery-app/utils"
)

type AddressController struct {
	Lookup services.AddressLookup
}

func NewAddressController(lookup services.AddressLookup) *AddressController {
	return &AddressController{Lookup: lookup}
}

// LookupCEP prefills the ordering form. Advisory only: an unknown CEP is a
// null result, and the customer can always type the address by hand.
func (ac *AddressController) LookupCEP(c *gin.Context) {
	address, err := ac.Lookup.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if address == nil {
		utils.RespondJSON(c, http.StatusOK, "CEP not found", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Address found", address)
}
