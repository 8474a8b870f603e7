package tournamentController

import (
	"errors"
	"log"

	"arena-app/database"
	"arena-app/ledger"
	"arena-app/middleware"
	"arena-app/models"
	"arena-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateTournament creates a tournament in DRAFT (Admin only); the scheduler
// opens registration when the window starts.
func CreateTournament(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCreateTournament").(*models.Tournament)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tournament := *reqData
	tournament.Status = models.TournamentDraft
	tournament.CreatedBy = userId

	if err := database.Database.Db.Create(&tournament).Error; err != nil {
		log.Printf("Error creating tournament: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create tournament!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Tournament created!", tournament)
}

// ListTournaments lists tournaments, optionally by status
func ListTournaments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Tournament{}).Where("is_deleted = false")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var tournaments []models.Tournament
	if err := query.Order("starts_at ASC").Offset(offset).Limit(limit).Find(&tournaments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tournaments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tournaments fetched!", fiber.Map{
		"tournaments": tournaments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetTournament returns one tournament with its registration count
func GetTournament(c *fiber.Ctx) error {
	tournamentId, err := c.ParamsInt("id")
	if err != nil || tournamentId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid tournament id!", nil)
	}

	db := database.Database.Db

	var tournament models.Tournament
	if err := db.Where("id = ? AND is_deleted = false", tournamentId).First(&tournament).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tournament not found!", nil)
	}

	var registered int64
	db.Model(&models.TournamentRegistration{}).
		Where("tournament_id = ? AND is_deleted = false", tournament.ID).
		Count(&registered)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tournament fetched!", fiber.Map{
		"tournament":      tournament,
		"registeredTeams": registered,
	})
}

// RegisterTeam registers a team for a tournament (team owner only). The slot
// check, the duplicate check, the entry-fee debit from the team wallet and
// the registration insert share one serializable unit, so two teams racing
// for the last slot cannot both get in.
func RegisterTeam(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedRegister").(*struct {
		TournamentID uint `json:"tournamentId"`
		TeamID       uint `json:"teamId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var tournament models.Tournament
	if err := db.Where("id = ? AND is_deleted = false", reqData.TournamentID).First(&tournament).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tournament not found!", nil)
	}

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = false", reqData.TeamID).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}
	if team.OwnerID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the team owner can register the team!", nil)
	}

	registration := models.TournamentRegistration{
		TournamentID: tournament.ID,
		TeamID:       team.ID,
		PaymentStatus: func() models.PaymentStatus {
			if tournament.EntryFee > 0 {
				return models.PaymentStatusPaid
			}
			return models.PaymentStatusFree
		}(),
		RegisteredBy: userId,
	}

	err := database.WithSerializableTx(func(tx *gorm.DB) error {
		// Re-read state inside the unit
		var fresh models.Tournament
		if err := tx.Where("id = ? AND is_deleted = false", tournament.ID).First(&fresh).Error; err != nil {
			return err
		}
		if fresh.Status != models.TournamentRegistrationOpen {
			return errRegistrationClosed
		}

		var count int64
		if err := tx.Model(&models.TournamentRegistration{}).
			Where("tournament_id = ? AND is_deleted = false", fresh.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(fresh.MaxTeams) {
			return errTournamentFull
		}

		var existing models.TournamentRegistration
		if err := tx.Where("tournament_id = ? AND team_id = ? AND is_deleted = false",
			fresh.ID, team.ID).First(&existing).Error; err == nil {
			return errAlreadyRegistered
		}

		if fresh.EntryFee > 0 {
			if err := ledger.DebitTeam(tx, team.ID, fresh.EntryFee); err != nil {
				return err
			}
			if err := ledger.Record(tx, &models.Transaction{
				OwnerType:   models.OwnerTypeTeam,
				OwnerID:     team.ID,
				Type:        models.TransactionTypeTournamentEntryFee,
				Amount:      fresh.EntryFee,
				Status:      models.TransactionStatusCompleted,
				Reference:   ledger.EntryFeeReference(fresh.ID, team.ID),
				Description: "Entry fee for " + fresh.Name,
			}); err != nil {
				return err
			}
		}

		if err := tx.Create(&registration).Error; err != nil {
			// The unique index backs the duplicate check under concurrency
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errRegistrationClosed):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Registration is not open!", nil)
		case errors.Is(err, errTournamentFull):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Tournament is full!", nil)
		case errors.Is(err, errAlreadyRegistered):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Team is already registered!", nil)
		case errors.Is(err, ledger.ErrInsufficientBalance):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient team balance!", nil)
		}
		log.Printf("Error registering team %d for tournament %d: %v", team.ID, tournament.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register team!", nil)
	}

	var owner models.User
	if err := db.Where("id = ?", userId).First(&owner).Error; err == nil {
		utils.SendRegistrationEmail(owner.Email, owner.Name, team.Name, tournament.Name)
		go utils.NotifyUser(userId, "tournament", "Registration confirmed",
			"Your team is registered for "+tournament.Name+".")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Team registered!", registration)
}

var (
	errRegistrationClosed = errors.New("registration closed")
	errTournamentFull     = errors.New("tournament full")
	errAlreadyRegistered  = errors.New("already registered")
)
