package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"ok": false, "error": msg})
}
func Unprocessable(c *gin.Context, msg string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": msg})
}
// Unavailable ไม่ส่งรายละเอียด error ของ store ออกไปหา client
func Unavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "service temporarily unavailable, please retry"})
}
func ServerError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
}

// File ส่ง binary เช่น PNG/PDF
func File(c *gin.Context, contentType, filename string, data []byte) {
	if filename != "" {
		c.Header("Content-Disposition", "inline; filename="+filename)
	}
	c.Data(http.StatusOK, contentType, data)
}
