package main

import (
	"context"
	"fmt"
	common_api "go-dernek/internal/common/api"
	"go-dernek/internal/config"
	"go-dernek/internal/database"
	"go-dernek/internal/features/audit"
	"go-dernek/internal/features/auth"
	"go-dernek/internal/features/cashregister"
	"go-dernek/internal/features/dashboard"
	"go-dernek/internal/features/debt"
	"go-dernek/internal/features/export"
	"go-dernek/internal/features/member"
	"go-dernek/internal/features/organization"
	"go-dernek/internal/features/payment"
	"go-dernek/internal/features/permission"
	"go-dernek/internal/features/person"
	"go-dernek/internal/features/role"
	"go-dernek/internal/features/schedule"
	"go-dernek/internal/features/subscriber"
	"go-dernek/internal/features/system"
	"go-dernek/internal/features/tariff"
	"go-dernek/internal/features/user"
	"go-dernek/internal/logger"
	"go-dernek/internal/middleware"
	"go-dernek/pkg/utils"
	"log"
	"time"

	_ "go-dernek/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	utils.SetSecret(cfg.JWTSecret)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	people person.PersonRepository,
	orgs organization.OrganizationRepository,
	members member.MemberRepository,
	subs subscriber.SubscriberRepository,
	debts debt.DebtRepository,
	payments payment.PaymentRepository,
	users user.UserRepository,
	roles role.RoleRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				indexed := map[string]interface {
					EnsureIndexes(ctx context.Context) error
				}{
					"kisiler":         people,
					"organizasyonlar": orgs,
					"uyeler":          members,
					"aboneler":        subs,
					"borclar":         debts,
					"odemeler":        payments,
					"users":           users,
					"roles":           roles,
				}
				for name, repo := range indexed {
					if err := repo.EnsureIndexes(ctx); err != nil {
						log.Printf("Failed to ensure %s indexes: %v", name, err)
					}
				}
			}()
			return nil
		},
	})
}

// @title           Dernek Yonetim API
// @version         1.0
// @description     Membership, dues and collection management backend.

// @host            localhost:8080
// @BasePath        /api
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			audit.NewAuditRepository,
			person.NewPersonRepository,
			organization.NewOrganizationRepository,
			member.NewMemberRepository,
			subscriber.NewSubscriberRepository,
			tariff.NewTariffRepository,
			debt.NewDebtRepository,
			payment.NewPaymentRepository,
			cashregister.NewRegisterRepository,
			dashboard.NewDashboardRepository,
			schedule.NewScheduleRepository,
			user.NewUserRepository,
			role.NewRoleRepository,

			system.NewHub,

			audit.NewAuditService,
			permission.NewPermissionService,
			person.NewPersonService,
			organization.NewOrganizationService,
			member.NewMemberService,
			subscriber.NewSubscriberService,
			tariff.NewTariffService,
			debt.NewDebtService,
			payment.NewPaymentService,
			cashregister.NewRegisterService,
			dashboard.NewDashboardService,
			export.NewExportService,
			schedule.NewScheduleService,
			user.NewUserService,
			role.NewRoleService,
			auth.NewAuthService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(r user.UserRepository) permission.UserSource { return r },
			func(r role.RoleRepository) permission.RoleSource { return r },
			func(r user.UserRepository) audit.UserFinder { return r },
			func(r user.UserRepository) role.HolderSource { return r },
			func(s permission.PermissionService) middleware.PermissionChecker { return s },
			func(s permission.PermissionService) middleware.AdminChecker { return s },
			func(s permission.PermissionService) user.CacheInvalidator { return s },
			func(s permission.PermissionService) role.CacheInvalidator { return s },
			func(s person.PersonService) member.PersonSource { return s },
			func(s person.PersonService) subscriber.PersonSource { return s },
			func(r debt.DebtRepository) member.DebtSource { return r },
			func(r debt.DebtRepository) tariff.DebtCounter { return r },
			func(r member.MemberRepository) tariff.MemberDocSource { return r },
			func(s member.MemberService) organization.MemberSource { return s },
			func(s member.MemberService) debt.MemberSource { return s },
			func(s tariff.TariffService) debt.TariffSource { return s },
			func(r payment.PaymentRepository) debt.PaymentSource { return r },
			func(r payment.PaymentRepository) cashregister.PaymentTotals { return r },
			func(h *system.Hub) payment.EventPublisher { return h },
			func(h *system.Hub) schedule.EventPublisher { return h },
			func(members member.MemberService, subs subscriber.SubscriberService) []person.ReferenceSource {
				return []person.ReferenceSource{members, subs}
			},

			// Initialize Controller
			auth.NewAuthController,
			person.NewPersonController,
			organization.NewOrganizationController,
			member.NewMemberController,
			subscriber.NewSubscriberController,
			tariff.NewTariffController,
			debt.NewDebtController,
			payment.NewPaymentController,
			cashregister.NewRegisterController,
			dashboard.NewDashboardController,
			export.NewExportController,
			schedule.NewScheduleController,
			audit.NewAuditController,
			user.NewUserController,
			role.NewRoleController,
			permission.NewPermissionController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(person.NewPersonApi),
			AsRoute(organization.NewOrganizationApi),
			AsRoute(member.NewMemberApi),
			AsRoute(subscriber.NewSubscriberApi),
			AsRoute(tariff.NewTariffApi),
			AsRoute(debt.NewDebtApi),
			AsRoute(payment.NewPaymentApi),
			AsRoute(cashregister.NewRegisterApi),
			AsRoute(dashboard.NewDashboardApi),
			AsRoute(export.NewExportApi),
			AsRoute(schedule.NewScheduleApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(user.NewUserApi),
			AsRoute(role.NewRoleApi),
			AsRoute(permission.NewPermissionApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduleService schedule.ScheduleService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduleService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return scheduleService.StopScheduler()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
