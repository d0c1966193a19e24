package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Afrovis/castle-wars/internal/camera"
	"github.com/Afrovis/castle-wars/internal/editor"
	"github.com/Afrovis/castle-wars/internal/logging"
	"github.com/Afrovis/castle-wars/internal/middleware"
	"github.com/Afrovis/castle-wars/internal/observability"
	"github.com/Afrovis/castle-wars/internal/vec"
)

// RestServer представляет REST API редактора.
// Он играет роль хоста взаимодействий: принимает позу камеры, курсор и
// фронт кнопки, передаёт их в сессию и возвращает принятое решение.
type RestServer struct {
	router  *gin.Engine
	session *editor.Session
	camera  camera.Settings
	port    string
	stats   *StatsCollector
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port    string          // порт для запуска сервера, вида ":8088"
	Session *editor.Session // сессия редактирования
	Camera  camera.Settings // параметры камеры, отдаваемые клиенту
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}
	if config.Camera == (camera.Settings{}) {
		config.Camera = camera.DefaultSettings()
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware("editor_api"))
	router.Use(middleware.RequestLogger())

	httpMetrics := middleware.NewHTTPMetrics("editor_api")
	router.Use(httpMetrics.Handler())
	httpMetrics.Expose(router)

	server := &RestServer{
		router:  router,
		session: config.Session,
		camera:  config.Camera,
		port:    config.Port,
		stats:   NewStatsCollector(),
	}

	server.setupRoutes()
	return server
}

// poseRequest описывает позу камеры в теле запроса
type poseRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

// pickRequest описывает один запрос взаимодействия
type pickRequest struct {
	Camera   poseRequest `json:"camera" binding:"required"`
	CursorX  float64     `json:"cursor_x"`
	CursorY  float64     `json:"cursor_y"`
	Width    float64     `json:"width" binding:"required"`
	Height   float64     `json:"height" binding:"required"`
	FOVY     float64     `json:"fovy" binding:"required"`
	Button   string      `json:"button"` // primary | secondary
}

func (r pickRequest) pose() camera.Pose {
	return camera.Pose{
		Position: vec.Vec3Float{X: r.Camera.X, Y: r.Camera.Y, Z: r.Camera.Z},
		Yaw:      r.Camera.Yaw,
		Pitch:    r.Camera.Pitch,
	}
}

func (r pickRequest) viewport() camera.Viewport {
	return camera.Viewport{Width: r.Width, Height: r.Height, FOVY: r.FOVY}
}

func (r pickRequest) cursor() vec.Vec2Float {
	return vec.Vec2Float{X: r.CursorX, Y: r.CursorY}
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := rs.router.Group("/api/v1")

	editorGroup := api.Group("/editor")
	{
		editorGroup.POST("/click", rs.handleClick)
		editorGroup.POST("/pick", rs.handlePick)
		editorGroup.GET("/settings", rs.handleSettings)
	}

	worldGroup := api.Group("/world")
	{
		worldGroup.GET("/blocks", rs.handleBlocks)
		worldGroup.GET("/stats", rs.handleStats)
	}
}

// handleClick обрабатывает один фронт нажатия кнопки
func (rs *RestServer) handleClick(c *gin.Context) {
	var req pickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action := editor.ActionPlace
	if req.Button == "secondary" {
		action = editor.ActionRemove
	}

	decision, err := rs.session.Click(req.pose(), req.cursor(), req.viewport(), action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Set(middleware.OutcomeKey, decision.Kind.String())
	observability.RecordDecision(c.Request.Context(), decision.Kind.String(), rs.session.World().Count())

	response := gin.H{
		"outcome":     decision.Kind.String(),
		"block_count": rs.session.World().Count(),
	}
	switch decision.Kind {
	case editor.DecisionPlace:
		response["position"] = gin.H{
			"x": decision.Position.X,
			"y": decision.Position.Y,
			"z": decision.Position.Z,
		}
	case editor.DecisionRemove:
		response["removed"] = decision.Target.String()
	}

	c.JSON(http.StatusOK, response)
}

// handlePick выполняет поиск попадания без изменения мира
func (rs *RestServer) handlePick(c *gin.Context) {
	var req pickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hit, found, err := rs.session.Pick(req.pose(), req.cursor(), req.viewport())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.Set(middleware.OutcomeKey, "miss")
		c.JSON(http.StatusOK, gin.H{"hit": false})
		return
	}

	c.Set(middleware.OutcomeKey, "hit")
	c.JSON(http.StatusOK, gin.H{
		"hit":      true,
		"block":    hit.Block.String(),
		"distance": hit.Distance,
		"normal":   gin.H{"x": hit.Normal.X, "y": hit.Normal.Y, "z": hit.Normal.Z},
	})
}

// handleBlocks возвращает снимок всех блоков мира
func (rs *RestServer) handleBlocks(c *gin.Context) {
	blocks := rs.session.World().Snapshot()

	list := make([]gin.H, 0, len(blocks))
	for _, b := range blocks {
		list = append(list, gin.H{
			"id": b.ID.String(),
			"x":  b.Position.X,
			"y":  b.Position.Y,
			"z":  b.Position.Z,
		})
	}

	c.JSON(http.StatusOK, gin.H{"count": len(list), "blocks": list})
}

// handleStats возвращает сводку состояния редактора
func (rs *RestServer) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, rs.stats.Collect(rs.session.World()))
}

// handleSettings отдаёт клиенту параметры камеры и радиус взаимодействия
func (rs *RestServer) handleSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"move_speed":   rs.camera.Speed,
		"sensitivity":  rs.camera.Sensitivity,
		"pitch_limit":  rs.camera.PitchLimit,
		"max_distance": rs.session.MaxDistance(),
	})
}

// Start запускает сервер в отдельной горутине
func (rs *RestServer) Start() {
	go func() {
		logging.Info("🌐 REST API редактора слушает %s", rs.port)
		if err := rs.router.Run(rs.port); err != nil {
			logging.Error("REST API остановлен: %v", err)
		}
	}()
}
