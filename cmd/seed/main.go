package main

import (
	"context"
	"time"

	"go-dernek/internal/config"
	"go-dernek/internal/database"
	"go-dernek/internal/features/cashregister"
	"go-dernek/internal/features/permission"
	"go-dernek/internal/features/role"
	"go-dernek/internal/features/tariff"
	"go-dernek/internal/features/user"
	"go-dernek/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func moduleGrants(islem string, moduller ...string) []permission.Entry {
	entries := make([]permission.Entry, 0, len(moduller))
	for _, m := range moduller {
		entries = append(entries, permission.Entry{Modul: m, Islem: islem})
	}
	return entries
}

func systemRoles() []role.Role {
	return []role.Role{
		{
			Name:       "Yonetici",
			Slug:       "admin",
			IsAdmin:    true,
			SystemRole: true,
		},
		{
			Name:       "Muhasebe",
			Slug:       "muhasebe",
			SystemRole: true,
			Permissions: append(
				moduleGrants("silme", "borclar", "odemeler", "tarifeler"),
				moduleGrants("goruntuleme", "uyeler", "kisiler", "kasalar", "dashboard", "export")...,
			),
		},
		{
			Name:       "Uye Islemleri",
			Slug:       "uye-islemleri",
			SystemRole: true,
			Permissions: append(
				moduleGrants("silme", "kisiler", "uyeler", "aboneler", "organizasyonlar"),
				moduleGrants("goruntuleme", "borclar", "dashboard")...,
			),
		},
	}
}

// Seed runs the database seeding
func Seed(
	lc fx.Lifecycle,
	roleRepo role.RoleRepository,
	userRepo user.UserRepository,
	registerRepo cashregister.RegisterRepository,
	tariffRepo tariff.TariffRepository,
	cfg *config.Config,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Starting database seeding...")
				now := time.Now()

				// 1. System roles
				var adminRoleID primitive.ObjectID
				for _, r := range systemRoles() {
					existing, err := roleRepo.FindBySlug(ctx, r.Slug)
					if err == nil {
						logger.Info("Role exists, skipping", zap.String("slug", r.Slug))
						if r.Slug == "admin" {
							adminRoleID = existing.ID
						}
						continue
					}

					r.ID = primitive.NewObjectID()
					r.CreatedAt = now
					r.UpdatedAt = now
					if err := roleRepo.Create(ctx, &r); err != nil {
						logger.Fatal("Failed to create role", zap.String("slug", r.Slug), zap.Error(err))
					}
					logger.Info("Role created", zap.String("slug", r.Slug))
					if r.Slug == "admin" {
						adminRoleID = r.ID
					}
				}

				// 2. Admin account
				adminEmail := cfg.AdminEmail
				if adminEmail == "" {
					adminEmail = "admin@localhost"
				}
				if _, err := userRepo.FindByEmail(ctx, adminEmail); err == nil {
					logger.Info("Admin user exists, skipping", zap.String("email", adminEmail))
				} else {
					hash, err := bcrypt.GenerateFromPassword([]byte("degistir123"), bcrypt.DefaultCost)
					if err != nil {
						logger.Fatal("Failed to hash admin password", zap.Error(err))
					}
					admin := user.User{
						ID:        primitive.NewObjectID(),
						Name:      "Yonetici",
						Email:     adminEmail,
						Password:  string(hash),
						RoleIDs:   []primitive.ObjectID{adminRoleID},
						Active:    true,
						CreatedAt: now,
						UpdatedAt: now,
					}
					if err := userRepo.Create(ctx, &admin); err != nil {
						logger.Fatal("Failed to create admin user", zap.Error(err))
					}
					logger.Info("Admin user created; change the default password",
						zap.String("email", adminEmail))
				}

				// 3. Default cash registers
				registers, err := registerRepo.List(ctx)
				if err != nil {
					logger.Fatal("Failed to list registers", zap.Error(err))
				}
				if len(registers) == 0 {
					defaults := []cashregister.Register{
						{Name: "Merkez Kasa", Type: cashregister.TypeCash},
						{Name: "Banka Hesabi", Type: cashregister.TypeBank},
					}
					for _, reg := range defaults {
						reg.ID = primitive.NewObjectID()
						reg.Active = true
						reg.CreatedAt = now
						reg.UpdatedAt = now
						if err := registerRepo.Create(ctx, &reg); err != nil {
							logger.Fatal("Failed to create register", zap.String("ad", reg.Name), zap.Error(err))
						}
						logger.Info("Register created", zap.String("ad", reg.Name))
					}
				} else {
					logger.Info("Registers exist, skipping", zap.Int("count", len(registers)))
				}

				// 4. Example tariffs for the current year
				year := now.Year()
				tariffs, err := tariffRepo.List(ctx, map[string]interface{}{"yil": year})
				if err != nil {
					logger.Fatal("Failed to list tariffs", zap.Error(err))
				}
				if len(tariffs) == 0 {
					defaults := []tariff.Tariff{
						{
							Name:   "Standart Aidat",
							Type:   tariff.TypeMemberDues,
							Amount: 150,
							Year:   year,
						},
						{
							Name:    "Kademeli Aidat",
							Type:    tariff.TypeMemberDues,
							Amount:  150,
							Year:    year,
							Formula: `tutar := taban
if uye.durum == "pasif" {
  tutar = taban / 2
}`,
						},
						{
							Name:   "Su Abonelik",
							Type:   tariff.TypeSubscription,
							Amount: 80,
							Year:   year,
						},
					}
					for _, t := range defaults {
						t.ID = primitive.NewObjectID()
						t.Active = true
						t.CreatedAt = now
						t.UpdatedAt = now
						if err := tariffRepo.Create(ctx, &t); err != nil {
							logger.Fatal("Failed to create tariff", zap.String("ad", t.Name), zap.Error(err))
						}
						logger.Info("Tariff created", zap.String("ad", t.Name))
					}
				} else {
					logger.Info("Tariffs exist for year, skipping", zap.Int("year", year))
				}

				logger.Info("Seeding complete")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			role.NewRoleRepository,
			user.NewUserRepository,
			cashregister.NewRegisterRepository,
			tariff.NewTariffRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
