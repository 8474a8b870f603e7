package walletRoutes

import (
	walletController "arena-app/controllers/wallet"
	"arena-app/middleware"
	walletValidator "arena-app/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet")

	// User routes
	walletGroup.Get("/balance", middleware.JWTMiddleware, walletController.GetWalletBalance)
	walletGroup.Post("/deposit", walletValidator.Deposit(), middleware.JWTMiddleware, walletController.SubmitDeposit)
	walletGroup.Post("/withdraw", walletValidator.Withdrawal(), middleware.JWTMiddleware, walletController.SubmitWithdrawal)
	walletGroup.Get("/history", middleware.JWTMiddleware, walletController.GetWalletHistory)

	// Admin routes
	adminGroup := walletGroup.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN", "SUPER-ADMIN"))
	adminGroup.Get("/pending", walletController.GetPendingTransactions)
	adminGroup.Post("/finalize", walletValidator.Finalize(), walletController.FinalizeTransaction)
	adminGroup.Get("/stats", walletController.GetWalletStats)
	adminGroup.Post("/add-balance", walletValidator.AddBalance(), walletController.AddBalance)
	adminGroup.Post("/deduct-balance", walletValidator.DeductBalance(), walletController.DeductBalance)
}
