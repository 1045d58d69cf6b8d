package response

import "github.com/gin-gonic/gin"

// Errors отдаёт тело вида {"errors": "<message>"} — формат для ошибок
// валидации и конфликтов (повторное избранное, подписка на себя и т.п.).
func Errors(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"errors": message})
}

// Detail отдаёт тело вида {"detail": "<message>"} — формат для not-found
// и ошибок авторизации.
func Detail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"detail": message})
}

func AbortDetail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"detail": message})
}
