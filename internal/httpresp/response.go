package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Message answers mutations that have nothing to return.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// Attachment sends a generated file as a download.
func Attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}
