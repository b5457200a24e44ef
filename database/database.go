package database

import (
	"fmt"
	"log"

	"github.com/4lexxe/backend-FJV/config"
	"github.com/4lexxe/backend-FJV/internal/domain/categorias"
	"github.com/4lexxe/backend-FJV/internal/domain/clubes"
	"github.com/4lexxe/backend-FJV/internal/domain/cobros"
	"github.com/4lexxe/backend-FJV/internal/domain/equipos"
	"github.com/4lexxe/backend-FJV/internal/domain/galerias"
	"github.com/4lexxe/backend-FJV/internal/domain/noticias"
	"github.com/4lexxe/backend-FJV/internal/domain/notificaciones"
	"github.com/4lexxe/backend-FJV/internal/domain/personas"
	"github.com/4lexxe/backend-FJV/internal/domain/usuarios"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB abre la conexión, migra el esquema y siembra los roles. La conexión
// se construye una sola vez al arrancar y se inyecta en los handlers; no hay
// instancia global.
func InitDB() *gorm.DB {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{
		// los errores del driver se traducen a gorm.ErrDuplicatedKey /
		// gorm.ErrForeignKeyViolated para el mapeo 409/400 de los handlers
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		// acceso
		&usuarios.Rol{},
		&usuarios.Usuario{},

		// federación
		&clubes.Club{},
		&categorias.Categoria{},
		&personas.Persona{},
		&personas.Credencial{},
		&equipos.Equipo{},

		// cobranzas
		&cobros.Cobro{},
		&cobros.Pago{},
		&notificaciones.MercadoPagoNotification{},

		// contenido
		&noticias.Noticia{},
		&galerias.Galeria{},
		&galerias.Imagen{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	if err := seedRoles(db); err != nil {
		log.Fatal("❌ Seed error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
	return db
}

func seedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&usuarios.Rol{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	descripcion := func(s string) *string { return &s }
	return db.Create(&[]usuarios.Rol{
		{Nombre: usuarios.RolAdmin, Descripcion: descripcion("Administrador del sistema")},
		{Nombre: usuarios.RolUsuario, Descripcion: descripcion("Usuario regular")},
		{Nombre: usuarios.RolUsuarioSocial, Descripcion: descripcion("Usuario de redes sociales")},
	}).Error
}
