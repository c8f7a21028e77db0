package handler

import (
	"errors"
	"net/http"

	"github.com/bidboard/marketplace-api/internal/resource"
	"github.com/bidboard/marketplace-api/internal/resource/service"
	"github.com/bidboard/marketplace-api/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// EmailParam is the query parameter naming whose documents to list.
const EmailParam = "email"

// RegisterJobRoutes mounts the job endpoints. gate runs before the
// identity-scoped listing and must reject anonymous requests.
func RegisterJobRoutes(r gin.IRoutes, jobs *service.Collection, gate gin.HandlerFunc) {
	r.GET("/jobs", list(jobs, ""))
	r.GET("/jobs/:id", get(jobs))
	r.GET("/jobs-email", gate, middleware.RequireEmailScope(EmailParam), list(jobs, resource.BuyerEmailField))
	r.POST("/jobs", create(jobs))
	r.PUT("/jobs/:id", func(c *gin.Context) {
		doc, ok := bindDocument(c)
		if !ok {
			return
		}
		res, err := jobs.Replace(c.Request.Context(), c.Param("id"), doc)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})
	r.DELETE("/jobs/:id", func(c *gin.Context) {
		res, err := jobs.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})
}

// RegisterBidRoutes mounts the bid endpoints. Received bids are matched on
// the buyer email copied into each bid when it was placed.
func RegisterBidRoutes(r gin.IRoutes, bids *service.Collection, gate gin.HandlerFunc) {
	r.POST("/bid", create(bids))
	r.GET("/myBids", gate, middleware.RequireEmailScope(EmailParam), list(bids, resource.BidderEmailField))
	r.GET("/bidRequest", gate, middleware.RequireEmailScope(EmailParam), list(bids, resource.BuyerEmailField))
	r.PATCH("/bid/:id", func(c *gin.Context) {
		fields, ok := bindDocument(c)
		if !ok {
			return
		}
		res, err := bids.Patch(c.Request.Context(), c.Param("id"), fields)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})
}

// list answers with every document, or only those whose field equals the
// email query parameter when field is set.
func list(col *service.Collection, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f resource.Filter
		if field != "" {
			f = resource.Eq(field, c.Query(EmailParam))
		}
		docs, err := col.List(c.Request.Context(), f)
		if err != nil {
			writeError(c, err)
			return
		}
		if docs == nil {
			docs = []resource.Document{}
		}
		c.JSON(http.StatusOK, docs)
	}
}

func get(col *service.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := col.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

func create(col *service.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, ok := bindDocument(c)
		if !ok {
			return
		}
		res, err := col.Create(c.Request.Context(), doc)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// bindDocument decodes a JSON object body. A null body yields a nil document,
// which the service rejects as invalid input.
func bindDocument(c *gin.Context) (resource.Document, bool) {
	var doc resource.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "request body must be a JSON object"})
		return nil, false
	}
	return doc, true
}

func writeError(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindInvalidID:
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
	case service.KindInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"message": errors.Unwrap(err).Error()})
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
