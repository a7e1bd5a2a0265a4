package experiences

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/shared/utils/response"
)

type Controller interface {
	GetAllExperiences(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetAllExperiences(c *gin.Context) {
	list, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadGateway, "Failed to fetch experiences. Please try again later.", nil, nil)
		return
	}

	if list == nil {
		list = []Experience{}
	}
	response.RespondJSON(c, "success", http.StatusOK, "Experiences retrieved successfully", list, nil)
}
