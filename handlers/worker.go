package handlers

import (
	"net/http"

	"servicelink/middleware"
	"servicelink/models"
	"servicelink/services/directory"
	"servicelink/services/location"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
)

type WorkerHandler struct {
	Directory *directory.Directory
	Location  *location.Service
}

func NewWorkerHandler(dir *directory.Directory, loc *location.Service) *WorkerHandler {
	return &WorkerHandler{Directory: dir, Location: loc}
}

// workerView is the public listing of a worker. Contact details and the government ID
// stay private to the worker's own profile. DistanceKm is the caller's distance to the
// service-area center when known.
type workerView struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	ProfileImage   string              `json:"profileImage,omitempty"`
	Skills         []models.Skill      `json:"skills"`
	Experience     int                 `json:"experience"`
	Availability   models.Availability `json:"availability"`
	ServiceArea    models.ServiceArea  `json:"serviceArea"`
	VerifiedWorker bool                `json:"verifiedWorker"`
	Rating         float64             `json:"rating"`
	Reviews        []models.Review     `json:"reviews"`
	DistanceKm     *float64            `json:"distanceKm,omitempty"`
}

func newWorkerView(w models.WorkerProfile, origin *models.Coordinates) workerView {
	return workerView{
		ID:             w.ID,
		Name:           w.Name,
		ProfileImage:   w.ProfileImage,
		Skills:         w.Skills,
		Experience:     w.Experience,
		Availability:   w.Availability,
		ServiceArea:    w.ServiceArea,
		VerifiedWorker: w.VerifiedWorker,
		Rating:         w.Rating,
		Reviews:        w.Reviews,
		DistanceKm:     directory.Distance(origin, w),
	}
}

func (h *WorkerHandler) origin(c *gin.Context) *models.Coordinates {
	if h.Location == nil {
		return nil
	}
	coord, _ := h.Location.Current(middleware.SessionID(c))
	return coord
}

func views(ws []models.WorkerProfile, origin *models.Coordinates) []workerView {
	out := make([]workerView, len(ws))
	for i, w := range ws {
		out[i] = newWorkerView(w, origin)
	}
	return out
}

func (h *WorkerHandler) ListWorkersHandler(c *gin.Context) {
	ws, err := h.Directory.FetchAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": views(ws, h.origin(c))})
}

func (h *WorkerHandler) SearchWorkersHandler(c *gin.Context) {
	var params directory.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid search parameters: "+err.Error()))
		return
	}
	origin := h.origin(c)
	ws, err := h.Directory.Search(c.Request.Context(), params, origin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": views(ws, origin)})
}

func (h *WorkerHandler) GetWorkerHandler(c *gin.Context) {
	id := c.Param("id")
	w, err := h.Directory.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if w == nil {
		utils.RespondError(c, utils.NewNotFoundError("worker", id))
		return
	}
	c.JSON(http.StatusOK, newWorkerView(*w, h.origin(c)))
}
