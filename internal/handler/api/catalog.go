package api

import (
	"net/http"

	reqdto "pos-checkout/internal/handler/dto/request"
	resdto "pos-checkout/internal/handler/dto/response"
	"pos-checkout/internal/handler/httperr"
	"pos-checkout/internal/usecase/commands"
	"pos-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, q: q}
}

// @Summary List products
// @Description Current catalog snapshot with quantity on hand. May lag committed checkouts by the cache TTL.
// @Tags products
// @Produce json
// @Success 200 {object} map[string][]resdto.ProductResponse
// @Failure 500 {object} httperr.Response
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	views, err := h.q.ListProducts(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load products", nil)
		return
	}
	resp, err := resdto.FromProductViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": resp})
}

// @Summary Bulk upload products
// @Description Upsert products by id, or replace the whole catalog, in one transaction
// @Tags products
// @Accept json
// @Produce json
// @Param request body reqdto.UploadCatalogRequest true "Catalog upload"
// @Success 200 {object} resdto.UploadResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /products/bulk [post]
func (h *CatalogHandler) Upload(c *gin.Context) {
	var req reqdto.UploadCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithCommitError(c, commands.InvalidCatalog(err))
		return
	}

	result, err := h.cmds.Upload(c.Request.Context(), req.ToCommand())
	if err != nil {
		abortWithCommitError(c, err)
		return
	}

	resp, err := resdto.FromUploadResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
