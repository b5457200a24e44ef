package routes

import (
	authapi "github.com/4lexxe/backend-FJV/internal/api/auth"
	categoriasapi "github.com/4lexxe/backend-FJV/internal/api/categorias"
	clubesapi "github.com/4lexxe/backend-FJV/internal/api/clubes"
	cobrosapi "github.com/4lexxe/backend-FJV/internal/api/cobros"
	credencialesapi "github.com/4lexxe/backend-FJV/internal/api/credenciales"
	equiposapi "github.com/4lexxe/backend-FJV/internal/api/equipos"
	galeriasapi "github.com/4lexxe/backend-FJV/internal/api/galerias"
	noticiasapi "github.com/4lexxe/backend-FJV/internal/api/noticias"
	personasapi "github.com/4lexxe/backend-FJV/internal/api/personas"
	rolesapi "github.com/4lexxe/backend-FJV/internal/api/roles"
	usuariosapi "github.com/4lexxe/backend-FJV/internal/api/usuarios"
	webhookapi "github.com/4lexxe/backend-FJV/internal/api/webhook"
	"github.com/4lexxe/backend-FJV/internal/app/http/middleware"
	"github.com/4lexxe/backend-FJV/internal/domain/cobros"
	"github.com/4lexxe/backend-FJV/internal/domain/personas"
	"github.com/4lexxe/backend-FJV/internal/infra/imgbb"
	"github.com/4lexxe/backend-FJV/internal/infra/mercadopago"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps agrupa todo lo que los handlers necesitan. Se arma una vez en main y
// se inyecta acá; los handlers no tocan estado global.
type Deps struct {
	DB        *gorm.DB
	Licencias *personas.LicenciaService
	Recon     *cobros.Reconciliador
	MP        *mercadopago.Client
	ImgBB     *imgbb.Client
	MPSecret  string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	auth := authapi.NewHandler(d.DB)
	usuarios := usuariosapi.NewHandler(d.DB)
	roles := rolesapi.NewHandler(d.DB)
	clubs := clubesapi.NewHandler(d.DB)
	categorias := categoriasapi.NewHandler(d.DB)
	equipos := equiposapi.NewHandler(d.DB)
	personasH := personasapi.NewHandler(d.DB, d.Licencias, d.ImgBB)
	credenciales := credencialesapi.NewHandler(d.DB)
	cobrosH := cobrosapi.NewHandler(d.DB, d.MP)
	noticias := noticiasapi.NewHandler(d.DB)
	galerias := galeriasapi.NewHandler(d.DB, d.ImgBB)
	webhook := webhookapi.NewHandler(d.Recon, d.MPSecret)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"nombre":  "API Federación Jujeña de Voleibol",
			"version": "1.0",
			"estado":  "ok",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// El webhook va fuera de los grupos: lo autentica su firma, no un JWT.
	r.POST("/api/webhook/mercadopago", webhook.Recibir)
	r.GET("/api/webhook/mercadopago", webhook.Recibir)

	api := r.Group("/api")

	// Público: lecturas y login, con sanitización en lo que acepta cuerpo
	publico := api.Group("/")
	publico.Use(middleware.SanitizeJSONMiddleware())

	publico.POST("/auth/login", auth.Login)
	publico.GET("/auth/google", auth.GoogleStart)
	publico.GET("/auth/google/callback", auth.GoogleCallback)

	publico.GET("/personas", personasH.GetPersonas)
	publico.GET("/personas/resumen", personasH.GetResumen)
	publico.GET("/personas/tipo", personasH.GetCantidadPorTipo)
	publico.GET("/personas/clubes", personasH.GetCantidadPorClub)
	publico.GET("/personas/filtro/buscar", personasH.GetPersonaFiltro)
	publico.GET("/personas/:id", personasH.GetPersona)
	publico.GET("/personas/:id/foto", personasH.GetFoto)

	publico.GET("/clubs", clubs.GetClubs)
	publico.GET("/clubs/filter", clubs.GetClubFilter)
	publico.GET("/clubs/:id", clubs.GetClub)

	publico.GET("/categorias", categorias.GetCategorias)
	publico.GET("/categorias/:id", categorias.GetCategoria)

	publico.GET("/equipos", equipos.GetEquipos)
	publico.GET("/equipos/filtro/buscar", equipos.GetEquipoFiltro)
	publico.GET("/equipos/:id", equipos.GetEquipo)

	publico.GET("/credenciales", credenciales.GetCredenciales)
	publico.GET("/credenciales/:id", credenciales.GetCredencial)

	publico.GET("/cobros", cobrosH.GetCobros)
	publico.GET("/cobros/filtro/buscar", cobrosH.GetCobroFiltro)
	publico.GET("/cobros/club/:idClub", cobrosH.GetCobrosPorClub)
	publico.GET("/cobros/equipo/:idEquipo", cobrosH.GetCobrosPorEquipo)
	publico.GET("/cobros/:id", cobrosH.GetCobro)
	publico.GET("/cobros/:id/pagos", cobrosH.GetPagos)

	publico.GET("/noticias", noticias.GetNoticias)
	publico.GET("/noticias/:id", noticias.GetNoticia)
	publico.GET("/galerias", galerias.GetGalerias)
	publico.GET("/galerias/:id", galerias.GetGaleria)

	// Autenticado: toda mutación de datos federativos y de contenido
	privado := api.Group("/")
	privado.Use(middleware.AuthMiddleware(), middleware.SanitizeJSONMiddleware())

	privado.GET("/auth/profile", auth.Profile)

	privado.POST("/personas", personasH.CreatePersona)
	privado.POST("/personas/actualizar-estado-licencias", personasH.ActualizarEstadoLicencias)
	privado.PUT("/personas/:id", personasH.EditPersona)
	privado.DELETE("/personas/:id", personasH.DeletePersona)
	privado.PUT("/personas/:id/renovar", personasH.RenovarLicencia)
	privado.PUT("/personas/:id/foto", middleware.ProcesarFotoPerfil(d.ImgBB), personasH.SubirFoto)
	privado.DELETE("/personas/:id/foto", personasH.DeleteFoto)

	privado.POST("/clubs", clubs.CreateClub)
	privado.PUT("/clubs/:id", clubs.EditClub)
	privado.DELETE("/clubs/:id", clubs.DeleteClub)

	privado.POST("/categorias", categorias.CreateCategoria)
	privado.PUT("/categorias/:id", categorias.EditCategoria)
	privado.DELETE("/categorias/:id", categorias.DeleteCategoria)

	privado.POST("/equipos", equipos.CreateEquipo)
	privado.PUT("/equipos/:id", equipos.EditEquipo)
	privado.DELETE("/equipos/:id", equipos.DeleteEquipo)

	privado.PUT("/credenciales/:id", credenciales.EditCredencial)
	privado.DELETE("/credenciales/:id", credenciales.DeleteCredencial)

	privado.POST("/cobros", cobrosH.CreateCobro)
	privado.PUT("/cobros/:id", cobrosH.EditCobro)
	privado.DELETE("/cobros/:id", cobrosH.DeleteCobro)
	privado.PUT("/cobros/:id/estado", cobrosH.CambiarEstado)
	privado.POST("/cobros/:id/pago-link", cobrosH.GenerarLinkPago)

	privado.GET("/noticias/admin", noticias.GetNoticiasAdmin)
	privado.POST("/noticias", noticias.CreateNoticia)
	privado.PUT("/noticias/:id", noticias.EditNoticia)
	privado.PUT("/noticias/:id/publicar", noticias.TogglePublicada)
	privado.DELETE("/noticias/:id", noticias.DeleteNoticia)

	privado.GET("/galerias/admin", galerias.GetGaleriasAdmin)
	privado.POST("/galerias", galerias.CreateGaleria)
	privado.PUT("/galerias/:id", galerias.EditGaleria)
	privado.DELETE("/galerias/:id", galerias.DeleteGaleria)
	privado.POST("/galerias/:id/imagenes", galerias.SubirImagenes)
	privado.DELETE("/galerias/:id/imagenes/:idImagen", galerias.DeleteImagen)
	privado.PUT("/galerias/:id/imagenes/orden", galerias.ReordenarImagenes)
	privado.PUT("/galerias/:id/portada", galerias.SetPortada)

	// Sólo administradores: cuentas y roles
	admin := api.Group("/")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRol("admin"), middleware.SanitizeJSONMiddleware())

	admin.GET("/usuarios", usuarios.GetUsuarios)
	admin.GET("/usuarios/:id", usuarios.GetUsuario)
	admin.POST("/usuarios", usuarios.CreateUsuario)
	admin.PUT("/usuarios/:id", usuarios.EditUsuario)
	admin.DELETE("/usuarios/:id", usuarios.DeleteUsuario)

	admin.GET("/rol", roles.GetRoles)
	admin.GET("/rol/:id", roles.GetRol)
	admin.POST("/rol", roles.CreateRol)
	admin.PUT("/rol/:id", roles.EditRol)
	admin.DELETE("/rol/:id", roles.DeleteRol)
}
