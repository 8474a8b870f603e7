package teamController

import (
	"log"

	"arena-app/database"
	"arena-app/middleware"
	"arena-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateTeam creates a team and enrols the creator as its OWNER member
func CreateTeam(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCreateTeam").(*struct {
		Name string `json:"name"`
		Tag  string `json:"tag"`
		Game string `json:"game"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("name = ? AND is_deleted = false", reqData.Name).First(&models.Team{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Team name is already taken!", nil)
	}

	team := models.Team{
		Name:    reqData.Name,
		Tag:     reqData.Tag,
		Game:    reqData.Game,
		OwnerID: userId,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		return tx.Create(&models.TeamMember{
			TeamID: team.ID,
			UserID: userId,
			Role:   models.TeamRoleOwner,
		}).Error
	})
	if err != nil {
		log.Printf("Error creating team for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create team!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Team created!", team)
}

// AddMember adds a user to the team (owner only)
func AddMember(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	teamId, err := c.ParamsInt("id")
	if err != nil || teamId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team id!", nil)
	}

	reqData, ok := c.Locals("validatedAddMember").(*struct {
		UserID uint `json:"userId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = false", teamId).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}
	if team.OwnerID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the team owner can add members!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Where("team_id = ? AND user_id = ? AND is_deleted = false", team.ID, reqData.UserID).
		First(&models.TeamMember{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User is already a member!", nil)
	}

	member := models.TeamMember{
		TeamID: team.ID,
		UserID: reqData.UserID,
		Role:   models.TeamRoleMember,
	}
	if err := db.Create(&member).Error; err != nil {
		log.Printf("Error adding member %d to team %d: %v", reqData.UserID, team.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Member added!", member)
}

// GetTeam returns a team with its members
func GetTeam(c *fiber.Ctx) error {
	teamId, err := c.ParamsInt("id")
	if err != nil || teamId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team id!", nil)
	}

	db := database.Database.Db

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = false", teamId).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}

	var members []models.TeamMember
	db.Where("team_id = ? AND is_deleted = false", team.ID).Find(&members)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team fetched!", fiber.Map{
		"team":    team,
		"members": members,
	})
}

// GetTeamWallet returns the team balance and ledger history (members only)
func GetTeamWallet(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	teamId, err := c.ParamsInt("id")
	if err != nil || teamId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid team id!", nil)
	}

	db := database.Database.Db

	var team models.Team
	if err := db.Where("id = ? AND is_deleted = false", teamId).First(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Team not found!", nil)
	}

	if err := db.Where("team_id = ? AND user_id = ? AND is_deleted = false", team.ID, userId).
		First(&models.TeamMember{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not a member of this team!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := db.Model(&models.Transaction{}).
		Where("owner_type = ? AND owner_id = ? AND is_deleted = false", models.OwnerTypeTeam, team.ID)

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	if err := query.Order("transaction_date DESC").Offset(offset).Limit(limit).Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch team wallet!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team wallet fetched!", fiber.Map{
		"balance":      team.Balance,
		"transactions": transactions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
