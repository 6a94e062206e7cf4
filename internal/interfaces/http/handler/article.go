package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/telops/backend/internal/application/catalog"
)

// ArticleHandler handles catalog endpoints
type ArticleHandler struct {
	BaseHandler
	articleService *catalogapp.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService *catalogapp.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// Create adds an article to the catalog
// POST /api/v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req catalogapp.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, article)
}

// Get returns a single article
// GET /api/v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	article, err := h.articleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, article)
}

// GetByCode returns an article by its business code
// GET /api/v1/articles/code/:code
func (h *ArticleHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Article code is required")
		return
	}

	article, err := h.articleService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, article)
}

// List returns articles with filtering and pagination
// GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	var filter catalogapp.ArticleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	articles, total, err := h.articleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, articles, total, page, pageSize)
}

// Update patches an article's name, price or active state
// PUT /api/v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, article)
}

// AdjustStock applies a signed stock delta (restock or correction)
// POST /api/v1/articles/:id/stock
func (h *ArticleHandler) AdjustStock(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, article)
}

// Delete removes an article
// DELETE /api/v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
