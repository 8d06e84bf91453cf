package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetMenu(c *gin.Context) {
	tenant := tenantFromGin(c)
	if tenant == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	resp, err := s.menuSvc.GetMenu(c.Request.Context(), tenant.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"restaurant": gin.H{
				"name":        tenant.Name,
				"short_name":  tenant.ShortName,
				"brand_color": tenant.BrandColor,
				"phone":       tenant.Phone,
			},
			"menu": resp,
		},
	})
}
