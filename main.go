package main

import (
	"log"
	"time"

	"github.com/4lexxe/backend-FJV/config"
	"github.com/4lexxe/backend-FJV/database"
	routes "github.com/4lexxe/backend-FJV/internal/app/http"
	"github.com/4lexxe/backend-FJV/internal/domain/cobros"
	"github.com/4lexxe/backend-FJV/internal/domain/personas"
	"github.com/4lexxe/backend-FJV/internal/infra/imgbb"
	"github.com/4lexxe/backend-FJV/internal/infra/mercadopago"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	db := database.InitDB()

	mp, err := mercadopago.NewClient(config.MP_ACCESS_TOKEN)
	if err != nil {
		log.Printf("MercadoPago deshabilitado: %v", err)
		mp = nil
	}
	imagenes := imgbb.NewClient(config.IMGBB_API_KEY)

	licencias := personas.NewLicenciaService(personas.NewGormStore(db))

	var consultor cobros.ConsultorPagos
	if mp != nil {
		consultor = mp
	}
	recon := cobros.NewReconciliador(cobros.NewGormStore(db), consultor)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Licencias: licencias,
		Recon:     recon,
		MP:        mp,
		ImgBB:     imagenes,
		MPSecret:  config.MP_WEBHOOK_SECRET,
	})

	r.Run(":" + config.PORT)
}
