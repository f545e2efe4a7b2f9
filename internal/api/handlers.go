package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kernelworx/psm/pkg/authclaims"
	"github.com/kernelworx/psm/pkg/server/commands"
	"github.com/kernelworx/psm/pkg/types"
)

func (a *API) routes(mux *http.ServeMux) {
	mux.Handle("GET /v1/account", handle(a, "GetMyAccount", http.StatusOK, a.getMyAccount))
	mux.Handle("PATCH /v1/account", handle(a, "UpdateMyAccount", http.StatusOK, a.updateMyAccount))
	mux.Handle("PUT /v1/account/preferences", handle(a, "UpdateMyPreferences", http.StatusOK, a.updateMyPreferences))

	mux.Handle("POST /v1/profiles", handle(a, "CreateSellerProfile", http.StatusCreated, a.createProfile))
	mux.Handle("GET /v1/profiles", handle(a, "ListMyProfiles", http.StatusOK, a.listMyProfiles))
	mux.Handle("GET /v1/profiles/{profileId}", handle(a, "GetProfile", http.StatusOK, a.getProfile))
	mux.Handle("PATCH /v1/profiles/{profileId}", handle(a, "UpdateSellerProfile", http.StatusOK, a.updateProfile))
	mux.Handle("DELETE /v1/profiles/{profileId}", handle(a, "DeleteSellerProfile", http.StatusOK, a.deleteProfile))
	mux.Handle("POST /v1/profiles/{profileId}/transfer", handle(a, "TransferProfileOwnership", http.StatusOK, a.transferProfile))

	mux.Handle("GET /v1/shares", handle(a, "ListMyShares", http.StatusOK, a.listMyShares))
	mux.Handle("POST /v1/profiles/{profileId}/shares", handle(a, "ShareProfileDirect", http.StatusCreated, a.shareProfile))
	mux.Handle("GET /v1/profiles/{profileId}/shares", handle(a, "ListSharesByProfile", http.StatusOK, a.listSharesByProfile))
	mux.Handle("DELETE /v1/profiles/{profileId}/shares/{accountId}", handle(a, "RevokeShare", http.StatusOK, a.revokeShare))

	mux.Handle("POST /v1/profiles/{profileId}/invites", handle(a, "CreateProfileInvite", http.StatusCreated, a.createInvite))
	mux.Handle("GET /v1/profiles/{profileId}/invites", handle(a, "ListInvitesByProfile", http.StatusOK, a.listInvitesByProfile))
	mux.Handle("DELETE /v1/profiles/{profileId}/invites/{inviteCode}", handle(a, "DeleteProfileInvite", http.StatusOK, a.deleteInvite))
	mux.Handle("POST /v1/invites/{inviteCode}/redeem", handle(a, "RedeemProfileInvite", http.StatusCreated, a.redeemInvite))

	mux.Handle("POST /v1/catalogs", handle(a, "CreateCatalog", http.StatusCreated, a.createCatalog))
	mux.Handle("GET /v1/catalogs/public", handle(a, "ListPublicCatalogs", http.StatusOK, a.listPublicCatalogs))
	mux.Handle("GET /v1/catalogs/mine", handle(a, "ListMyCatalogs", http.StatusOK, a.listMyCatalogs))
	mux.Handle("GET /v1/catalogs/in-use", handle(a, "ListCatalogsInUse", http.StatusOK, a.listCatalogsInUse))
	mux.Handle("GET /v1/catalogs/unit", handle(a, "ListUnitCatalogs", http.StatusOK, a.listUnitCatalogs))
	mux.Handle("GET /v1/catalogs/{catalogId}", handle(a, "GetCatalog", http.StatusOK, a.getCatalog))
	mux.Handle("PATCH /v1/catalogs/{catalogId}", handle(a, "UpdateCatalog", http.StatusOK, a.updateCatalog))
	mux.Handle("DELETE /v1/catalogs/{catalogId}", handle(a, "DeleteCatalog", http.StatusOK, a.deleteCatalog))

	mux.Handle("POST /v1/campaigns", handle(a, "CreateCampaign", http.StatusCreated, a.createCampaign))
	mux.Handle("GET /v1/campaigns/{campaignId}", handle(a, "GetCampaign", http.StatusOK, a.getCampaign))
	mux.Handle("PATCH /v1/campaigns/{campaignId}", handle(a, "UpdateCampaign", http.StatusOK, a.updateCampaign))
	mux.Handle("DELETE /v1/campaigns/{campaignId}", handle(a, "DeleteCampaign", http.StatusOK, a.deleteCampaign))
	mux.Handle("GET /v1/profiles/{profileId}/campaigns", handle(a, "ListCampaignsByProfile", http.StatusOK, a.listCampaignsByProfile))

	mux.Handle("POST /v1/orders", handle(a, "CreateOrder", http.StatusCreated, a.createOrder))
	mux.Handle("GET /v1/orders/{orderId}", handle(a, "GetOrder", http.StatusOK, a.getOrder))
	mux.Handle("PATCH /v1/orders/{orderId}", handle(a, "UpdateOrder", http.StatusOK, a.updateOrder))
	mux.Handle("DELETE /v1/orders/{orderId}", handle(a, "DeleteOrder", http.StatusOK, a.deleteOrder))
	mux.Handle("GET /v1/campaigns/{campaignId}/orders", handle(a, "ListOrdersByCampaign", http.StatusOK, a.listOrdersByCampaign))
	mux.Handle("GET /v1/profiles/{profileId}/orders", handle(a, "ListOrdersByProfile", http.StatusOK, a.listOrdersByProfile))

	mux.Handle("POST /v1/shared-campaigns", handle(a, "CreateSharedCampaign", http.StatusCreated, a.createSharedCampaign))
	mux.Handle("GET /v1/shared-campaigns/mine", handle(a, "ListMySharedCampaigns", http.StatusOK, a.listMySharedCampaigns))
	mux.Handle("GET /v1/shared-campaigns/find", handle(a, "FindSharedCampaigns", http.StatusOK, a.findSharedCampaigns))
	mux.Handle("GET /v1/shared-campaigns/{code}", handle(a, "GetSharedCampaign", http.StatusOK, a.getSharedCampaign))
	mux.Handle("PATCH /v1/shared-campaigns/{code}", handle(a, "UpdateSharedCampaign", http.StatusOK, a.updateSharedCampaign))
	mux.Handle("DELETE /v1/shared-campaigns/{code}", handle(a, "DeleteSharedCampaign", http.StatusOK, a.deleteSharedCampaign))
}

func (a *API) getMyAccount(r *http.Request) (*types.Account, error) {
	claims, _ := authclaims.AuthClaimsFromContext(r.Context())
	email := ""
	if claims != nil {
		email = claims.Email
	}
	return a.srv.GetMyAccount(r.Context(), &commands.GetMyAccountRequest{Email: email})
}

func (a *API) updateMyAccount(r *http.Request) (*types.Account, error) {
	body, err := decode[struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.UpdateMyAccount(r.Context(), &commands.UpdateMyAccountRequest{
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
}

func (a *API) updateMyPreferences(r *http.Request) (*types.Account, error) {
	body, err := decode[struct {
		Preferences string `json:"preferences"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.UpdateMyPreferences(r.Context(), &commands.UpdateMyPreferencesRequest{Preferences: body.Preferences})
}

func (a *API) createProfile(r *http.Request) (*types.SellerProfile, error) {
	body, err := decode[struct {
		SellerName string `json:"sellerName"`
		UnitType   string `json:"unitType"`
		UnitNumber string `json:"unitNumber"`
		City       string `json:"city"`
		State      string `json:"state"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.CreateSellerProfile(r.Context(), &commands.CreateSellerProfileRequest{
		SellerName: body.SellerName,
		UnitType:   body.UnitType,
		UnitNumber: body.UnitNumber,
		City:       body.City,
		State:      body.State,
	})
}

func (a *API) listMyProfiles(r *http.Request) ([]*types.SellerProfile, error) {
	return a.srv.ListMyProfiles(r.Context())
}

func (a *API) getProfile(r *http.Request) (*types.SellerProfile, error) {
	return a.srv.GetProfile(r.Context(), &commands.GetProfileRequest{ProfileID: r.PathValue("profileId")})
}

func (a *API) updateProfile(r *http.Request) (*types.SellerProfile, error) {
	body, err := decode[struct {
		SellerName *string `json:"sellerName"`
		UnitType   *string `json:"unitType"`
		UnitNumber *string `json:"unitNumber"`
		City       *string `json:"city"`
		State      *string `json:"state"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.UpdateSellerProfile(r.Context(), &commands.UpdateSellerProfileRequest{
		ProfileID:  r.PathValue("profileId"),
		SellerName: body.SellerName,
		UnitType:   body.UnitType,
		UnitNumber: body.UnitNumber,
		City:       body.City,
		State:      body.State,
	})
}

func (a *API) deleteProfile(r *http.Request) (*commands.DeleteSellerProfileResponse, error) {
	return a.srv.DeleteSellerProfile(r.Context(), &commands.DeleteSellerProfileRequest{ProfileID: r.PathValue("profileId")})
}

func (a *API) transferProfile(r *http.Request) (*types.SellerProfile, error) {
	body, err := decode[struct {
		NewOwnerAccountID string `json:"newOwnerAccountId"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.TransferProfileOwnership(r.Context(), &commands.TransferProfileOwnershipRequest{
		ProfileID:         r.PathValue("profileId"),
		NewOwnerAccountID: body.NewOwnerAccountID,
	})
}

func (a *API) listMyShares(r *http.Request) ([]*types.Share, error) {
	return a.srv.ListMyShares(r.Context())
}

func (a *API) shareProfile(r *http.Request) (*types.Share, error) {
	body, err := decode[struct {
		TargetEmail string             `json:"targetEmail"`
		Permissions []types.Permission `json:"permissions"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.ShareProfileDirect(r.Context(), &commands.ShareProfileDirectRequest{
		ProfileID:   r.PathValue("profileId"),
		TargetEmail: body.TargetEmail,
		Permissions: body.Permissions,
	})
}

func (a *API) listSharesByProfile(r *http.Request) ([]*types.Share, error) {
	return a.srv.ListSharesByProfile(r.Context(), &commands.ListSharesByProfileRequest{ProfileID: r.PathValue("profileId")})
}

func (a *API) revokeShare(r *http.Request) (*commands.RevokeShareResponse, error) {
	return a.srv.RevokeShare(r.Context(), &commands.RevokeShareRequest{
		ProfileID:       r.PathValue("profileId"),
		TargetAccountID: r.PathValue("accountId"),
	})
}

func (a *API) createInvite(r *http.Request) (*types.Invite, error) {
	body, err := decode[struct {
		Permissions []types.Permission `json:"permissions"`
		TTLSeconds  int64              `json:"ttlSeconds"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.CreateProfileInvite(r.Context(), &commands.CreateProfileInviteRequest{
		ProfileID:   r.PathValue("profileId"),
		Permissions: body.Permissions,
		TTL:         time.Duration(body.TTLSeconds) * time.Second,
	})
}

func (a *API) listInvitesByProfile(r *http.Request) ([]*types.Invite, error) {
	return a.srv.ListInvitesByProfile(r.Context(), &commands.ListInvitesByProfileRequest{ProfileID: r.PathValue("profileId")})
}

func (a *API) deleteInvite(r *http.Request) (*commands.DeleteProfileInviteResponse, error) {
	return a.srv.DeleteProfileInvite(r.Context(), &commands.DeleteProfileInviteRequest{
		ProfileID:  r.PathValue("profileId"),
		InviteCode: r.PathValue("inviteCode"),
	})
}

func (a *API) redeemInvite(r *http.Request) (*types.Share, error) {
	return a.srv.RedeemProfileInvite(r.Context(), &commands.RedeemProfileInviteRequest{InviteCode: r.PathValue("inviteCode")})
}

func (a *API) createCatalog(r *http.Request) (*types.Catalog, error) {
	body, err := decode[struct {
		CatalogName  string          `json:"catalogName"`
		Products     []types.Product `json:"products"`
		IsPublic     bool            `json:"isPublic"`
		AdminManaged bool            `json:"adminManaged"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.CreateCatalog(r.Context(), &commands.CreateCatalogRequest{
		CatalogName:  body.CatalogName,
		Products:     body.Products,
		IsPublic:     body.IsPublic,
		AdminManaged: body.AdminManaged,
	})
}

func (a *API) listPublicCatalogs(r *http.Request) ([]*types.Catalog, error) {
	return a.srv.ListPublicCatalogs(r.Context())
}

func (a *API) listMyCatalogs(r *http.Request) ([]*types.Catalog, error) {
	return a.srv.ListMyCatalogs(r.Context())
}

func (a *API) listCatalogsInUse(r *http.Request) ([]string, error) {
	return a.srv.ListCatalogsInUse(r.Context())
}

func (a *API) listUnitCatalogs(r *http.Request) ([]*types.Catalog, error) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	return a.srv.ListUnitCatalogs(r.Context(), &commands.ListUnitCatalogsRequest{
		UnitType:   q.Get("unitType"),
		UnitNumber: q.Get("unitNumber"),
		City:       q.Get("city"),
		State:      q.Get("state"),
		Year:       year,
	})
}

func (a *API) getCatalog(r *http.Request) (*types.Catalog, error) {
	return a.srv.GetCatalog(r.Context(), &commands.GetCatalogRequest{CatalogID: r.PathValue("catalogId")})
}

func (a *API) updateCatalog(r *http.Request) (*types.Catalog, error) {
	body, err := decode[struct {
		CatalogName *string         `json:"catalogName"`
		Products    []types.Product `json:"products"`
		IsPublic    *bool           `json:"isPublic"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.UpdateCatalog(r.Context(), &commands.UpdateCatalogRequest{
		CatalogID:   r.PathValue("catalogId"),
		CatalogName: body.CatalogName,
		Products:    body.Products,
		IsPublic:    body.IsPublic,
	})
}

func (a *API) deleteCatalog(r *http.Request) (*commands.DeleteCatalogResponse, error) {
	return a.srv.DeleteCatalog(r.Context(), &commands.DeleteCatalogRequest{CatalogID: r.PathValue("catalogId")})
}

func (a *API) createCampaign(r *http.Request) (*types.Campaign, error) {
	body, err := decode[struct {
		ProfileID          string `json:"profileId"`
		CampaignName       string `json:"campaignName"`
		CatalogID          string `json:"catalogId"`
		Year               int    `json:"year"`
		StartDate          string `json:"startDate"`
		EndDate            string `json:"endDate"`
		SharedCampaignCode string `json:"sharedCampaignCode"`
		ShareWithCreator   bool   `json:"shareWithCreator"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.CreateCampaign(r.Context(), &commands.CreateCampaignRequest{
		ProfileID:          body.ProfileID,
		CampaignName:       body.CampaignName,
		CatalogID:          body.CatalogID,
		Year:               body.Year,
		StartDate:          body.StartDate,
		EndDate:            body.EndDate,
		SharedCampaignCode: body.SharedCampaignCode,
		ShareWithCreator:   body.ShareWithCreator,
	})
}

func (a *API) getCampaign(r *http.Request) (*types.Campaign, error) {
	return a.srv.GetCampaign(r.Context(), &commands.GetCampaignRequest{CampaignID: r.PathValue("campaignId")})
}

func (a *API) updateCampaign(r *http.Request) (*types.Campaign, error) {
	body, err := decode[struct {
		CampaignName *string `json:"campaignName"`
		Year         *int    `json:"year"`
		StartDate    *string `json:"startDate"`
		EndDate      *string `json:"endDate"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.UpdateCampaign(r.Context(), &commands.UpdateCampaignRequest{
		CampaignID:   r.PathValue("campaignId"),
		CampaignName: body.CampaignName,
		Year:         body.Year,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
	})
}

func (a *API) deleteCampaign(r *http.Request) (*commands.DeleteCampaignResponse, error) {
	return a.srv.DeleteCampaign(r.Context(), &commands.DeleteCampaignRequest{CampaignID: r.PathValue("campaignId")})
}

func (a *API) listCampaignsByProfile(r *http.Request) ([]*types.Campaign, error) {
	return a.srv.ListCampaignsByProfile(r.Context(), &commands.ListCampaignsByProfileRequest{ProfileID: r.PathValue("profileId")})
}

func (a *API) createOrder(r *http.Request) (*types.Order, error) {
	body, err := decode[struct {
		CampaignID      string           `json:"campaignId"`
		CustomerName    string           `json:"customerName"`
		CustomerPhone   string           `json:"customerPhone"`
		CustomerAddress string           `json:"customerAddress"`
		OrderDate       string           `json:"orderDate"`
		PaymentMethod   string           `json:"paymentMethod"`
		Notes           string           `json:"notes"`
		LineItems       []types.LineItem `json:"lineItems"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.CreateOrder(r.Context(), &commands.CreateOrderRequest{
		CampaignID:      body.CampaignID,
		CustomerName:    body.CustomerName,
		CustomerPhone:   body.CustomerPhone,
		CustomerAddress: body.CustomerAddress,
		OrderDate:       body.OrderDate,
		PaymentMethod:   body.PaymentMethod,
		Notes:           body.Notes,
		LineItems:       body.LineItems,
	})
}

func (a *API) getOrder(r *http.Request) (*types.Order, error) {
	return a.srv.GetOrder(r.Context(), &commands.GetOrderRequest{OrderID: r.PathValue("orderId")})
}

func (a *API) updateOrder(r *http.Request) (*types.Order, error) {
	body, err := decode[struct {
		CustomerName    *string          `json:"customerName"`
		CustomerPhone   *string          `json:"customerPhone"`
		CustomerAddress *string          `json:"customerAddress"`
		OrderDate       *string          `json:"orderDate"`
		PaymentMethod   *string          `json:"paymentMethod"`
		Notes           *string          `json:"notes"`
		LineItems       []types.LineItem `json:"lineItems"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.UpdateOrder(r.Context(), &commands.UpdateOrderRequest{
		OrderID:         r.PathValue("orderId"),
		CustomerName:    body.CustomerName,
		CustomerPhone:   body.CustomerPhone,
		CustomerAddress: body.CustomerAddress,
		OrderDate:       body.OrderDate,
		PaymentMethod:   body.PaymentMethod,
		Notes:           body.Notes,
		LineItems:       body.LineItems,
	})
}

func (a *API) deleteOrder(r *http.Request) (*commands.DeleteOrderResponse, error) {
	return a.srv.DeleteOrder(r.Context(), &commands.DeleteOrderRequest{OrderID: r.PathValue("orderId")})
}

func (a *API) listOrdersByCampaign(r *http.Request) ([]*types.Order, error) {
	return a.srv.ListOrdersByCampaign(r.Context(), &commands.ListOrdersByCampaignRequest{CampaignID: r.PathValue("campaignId")})
}

func (a *API) listOrdersByProfile(r *http.Request) ([]*types.Order, error) {
	return a.srv.ListOrdersByProfile(r.Context(), &commands.ListOrdersByProfileRequest{ProfileID: r.PathValue("profileId")})
}

func (a *API) createSharedCampaign(r *http.Request) (*types.SharedCampaignTemplate, error) {
	body, err := decode[struct {
		CampaignName string `json:"campaignName"`
		CatalogID    string `json:"catalogId"`
		Description  string `json:"description"`
		UnitType     string `json:"unitType"`
		UnitNumber   string `json:"unitNumber"`
		City         string `json:"city"`
		State        string `json:"state"`
		Year         int    `json:"year"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.CreateSharedCampaign(r.Context(), &commands.CreateSharedCampaignRequest{
		CampaignName: body.CampaignName,
		CatalogID:    body.CatalogID,
		Description:  body.Description,
		UnitType:     body.UnitType,
		UnitNumber:   body.UnitNumber,
		City:         body.City,
		State:        body.State,
		Year:         body.Year,
	})
}

func (a *API) listMySharedCampaigns(r *http.Request) ([]*types.SharedCampaignTemplate, error) {
	return a.srv.ListMySharedCampaigns(r.Context())
}

func (a *API) findSharedCampaigns(r *http.Request) ([]*types.SharedCampaignTemplate, error) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	return a.srv.FindSharedCampaigns(r.Context(), &commands.FindSharedCampaignsRequest{
		UnitType:   q.Get("unitType"),
		UnitNumber: q.Get("unitNumber"),
		City:       q.Get("city"),
		State:      q.Get("state"),
		Year:       year,
	})
}

func (a *API) getSharedCampaign(r *http.Request) (*types.SharedCampaignTemplate, error) {
	return a.srv.GetSharedCampaign(r.Context(), &commands.GetSharedCampaignRequest{SharedCampaignCode: r.PathValue("code")})
}

func (a *API) updateSharedCampaign(r *http.Request) (*types.SharedCampaignTemplate, error) {
	body, err := decode[struct {
		CampaignName *string `json:"campaignName"`
		Description  *string `json:"description"`
	}](r)
	if err != nil {
		return nil, err
	}
	return a.srv.UpdateSharedCampaign(r.Context(), &commands.UpdateSharedCampaignRequest{
		SharedCampaignCode: r.PathValue("code"),
		CampaignName:       body.CampaignName,
		Description:        body.Description,
	})
}

func (a *API) deleteSharedCampaign(r *http.Request) (*commands.DeleteSharedCampaignResponse, error) {
	return a.srv.DeleteSharedCampaign(r.Context(), &commands.DeleteSharedCampaignRequest{SharedCampaignCode: r.PathValue("code")})
}
