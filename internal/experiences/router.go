package experiences

import "github.com/gin-gonic/gin"

func SetupExperienceRoutes(router *gin.RouterGroup, controller Controller) {
	publicExperiences := router.Group("/experiences")
	{
		publicExperiences.GET("", controller.GetAllExperiences) // GET /api/v1/experiences - Browse catalog
	}
}
