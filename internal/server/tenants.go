package server

import (
	"net/http"
	"strings"

	tenantdomain "github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/gin-gonic/gin"
)

type createTenantRequest struct {
	Name         string `json:"name"`
	ShortName    string `json:"short_name"`
	CustomDomain string `json:"custom_domain"`
	SupportEmail string `json:"support_email"`
	Phone        string `json:"phone"`
	BrandColor   string `json:"brand_color"`
}

type updateTenantRequest struct {
	Name         *string `json:"name"`
	CustomDomain *string `json:"custom_domain"`
	SupportEmail *string `json:"support_email"`
	Phone        *string `json:"phone"`
	BrandColor   *string `json:"brand_color"`
	Active       *bool   `json:"active"`
}

func (s *Server) CreateTenant(c *gin.Context) {
	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, tenantdomain.ErrInvalidName)
		return
	}

	resp, err := s.tenantSvc.Create(c.Request.Context(), tenantdomain.CreateTenantRequest{
		Name:         strings.TrimSpace(req.Name),
		ShortName:    strings.TrimSpace(req.ShortName),
		CustomDomain: strings.TrimSpace(req.CustomDomain),
		SupportEmail: strings.TrimSpace(req.SupportEmail),
		Phone:        strings.TrimSpace(req.Phone),
		BrandColor:   strings.TrimSpace(req.BrandColor),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetTenant(c *gin.Context) {
	resp, err := s.tenantSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTenant(c *gin.Context) {
	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, tenantdomain.ErrInvalidTenant)
		return
	}

	resp, err := s.tenantSvc.Update(c.Request.Context(), c.Param("id"), tenantdomain.UpdateTenantRequest{
		Name:         req.Name,
		CustomDomain: req.CustomDomain,
		SupportEmail: req.SupportEmail,
		Phone:        req.Phone,
		BrandColor:   req.BrandColor,
		Active:       req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateTenant(c *gin.Context) {
	if err := s.tenantSvc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deactivated": true}})
}
