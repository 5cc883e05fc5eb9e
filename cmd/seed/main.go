package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/digital-user-report/config"
	"github.com/oksasatya/digital-user-report/internal/domain/entity"
	"github.com/oksasatya/digital-user-report/pkg/helpers"
)

type fixture struct {
	user     entity.DigitalUser
	contact  *entity.Contact
	email    *entity.Email
	phone    *entity.Phone
	provider *entity.AuthProvider
	daysAgo  int
}

var google = &entity.AuthProvider{ID: "google", Name: "Google"}

var fixtures = []fixture{
	{
		user:     entity.DigitalUser{ID: "1001", PreferredName: "Ana"},
		contact:  &entity.Contact{ID: "c-1001", FullName: "Ana María Rojas", IDNumber: "12.345.678-9", IDType: "RUT"},
		email:    &entity.Email{ID: "e-1001", Value: "ana@example.com"},
		phone:    &entity.Phone{ID: "t-1001", Value: "+56911111111"},
		provider: google,
	},
	{
		user:  entity.DigitalUser{ID: "1002", PreferredName: "bruno"},
		email: &entity.Email{ID: "e-1002", Value: "bruno@example.com"},
	},
	{
		user:    entity.DigitalUser{ID: "1003", PreferredName: "Carla"},
		contact: &entity.Contact{ID: "c-1003", FullName: "Carla Fuentes", IDNumber: "9.876.543-2", IDType: "RUT"},
		phone:   &entity.Phone{ID: "t-1003", Value: "+56933333333"},
		daysAgo: 1,
	},
	{
		user:     entity.DigitalUser{ID: "1004", PreferredName: "Diego"},
		contact:  &entity.Contact{ID: "c-1004", FullName: "Diego Soto", IDNumber: "15.111.222-3", IDType: "RUT"},
		email:    &entity.Email{ID: "e-1004", Value: "diego@example.com"},
		phone:    &entity.Phone{ID: "t-1004", Value: "+56944444444"},
		provider: google,
		daysAgo:  3,
	},
	{
		user:    entity.DigitalUser{ID: "1005", PreferredName: "elena"},
		phone:   &entity.Phone{ID: "t-1005", Value: "+56955555555"},
		daysAgo: 7,
	},
}

func main() {
	operator := flag.String("operator", "operator", "operator name embedded in the printed access token")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	now := time.Now()
	for _, f := range fixtures {
		u := f.user
		u.CreatedAt = now.AddDate(0, 0, -f.daysAgo)
		if err := seed(db, u, f); err != nil {
			log.Fatalf("failed to seed user %s: %v", u.ID, err)
		}
	}
	fmt.Printf("seeded %d digital users\n", len(fixtures))

	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL)
	tok, exp, err := jwt.GenerateAccessToken(*operator)
	if err != nil {
		log.Fatalf("failed to mint operator token: %v", err)
	}
	fmt.Printf("operator=%s expires=%s\naccess_token=%s\n", *operator, exp.Format(time.RFC3339), tok)
}

func seed(db *sql.DB, u entity.DigitalUser, f fixture) error {
	if f.contact != nil {
		if _, err := db.Exec(`
			INSERT INTO contacto (id_contacto, nombre_completo, numero_identificacion, tipo_identificacion)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id_contacto) DO UPDATE SET nombre_completo = EXCLUDED.nombre_completo
		`, f.contact.ID, f.contact.FullName, f.contact.IDNumber, f.contact.IDType); err != nil {
			return err
		}
		u.ContactID = &f.contact.ID
	}
	if f.email != nil {
		if _, err := db.Exec(`
			INSERT INTO email (id_email, email) VALUES ($1, $2)
			ON CONFLICT (id_email) DO UPDATE SET email = EXCLUDED.email
		`, f.email.ID, f.email.Value); err != nil {
			return err
		}
		u.EmailID = &f.email.ID
		u.EmailValidated = true
	}
	if f.phone != nil {
		if _, err := db.Exec(`
			INSERT INTO telefono (id_telefono, telefono) VALUES ($1, $2)
			ON CONFLICT (id_telefono) DO UPDATE SET telefono = EXCLUDED.telefono
		`, f.phone.ID, f.phone.Value); err != nil {
			return err
		}
		u.PhoneID = &f.phone.ID
		u.PhoneValidated = true
	}
	if _, err := db.Exec(`
		INSERT INTO usuario_digital (id_usuario_digital, fecha_creacion, nombre_preferido, id_contacto, id_email, email_validado, id_telefono, telefono_validado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id_usuario_digital) DO UPDATE SET
			fecha_creacion = EXCLUDED.fecha_creacion,
			nombre_preferido = EXCLUDED.nombre_preferido,
			id_contacto = EXCLUDED.id_contacto,
			id_email = EXCLUDED.id_email,
			email_validado = EXCLUDED.email_validado,
			id_telefono = EXCLUDED.id_telefono,
			telefono_validado = EXCLUDED.telefono_validado
	`, u.ID.String(), u.CreatedAt, u.PreferredName, u.ContactID, u.EmailID, u.EmailValidated, u.PhoneID, u.PhoneValidated); err != nil {
		return err
	}
	if f.provider != nil {
		if _, err := db.Exec(`
			INSERT INTO proveedor_autenticacion (id_proveedor, nombre) VALUES ($1, $2)
			ON CONFLICT (id_proveedor) DO NOTHING
		`, f.provider.ID, f.provider.Name); err != nil {
			return err
		}
		if _, err := db.Exec(`
			INSERT INTO credencial_usuario (id_usuario_digital, id_proveedor) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, u.ID.String(), f.provider.ID); err != nil {
			return err
		}
	}
	return nil
}
