package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// UserHandler coordinates user, auth, and profile HTTP handlers.
type UserHandler struct {
	authService    *services.AuthService
	userService    *services.UserService
	profileService *services.ProfileService
	uploadDir      string
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService, profileService *services.ProfileService, uploadDir string) *UserHandler {
	return &UserHandler{
		authService:    authService,
		userService:    userService,
		profileService: profileService,
		uploadDir:      uploadDir,
	}
}

// GetUsers lists users, passwords excluded.
func (h *UserHandler) GetUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetUserByID returns a user together with their populated profile.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID, ok := parseUserID(c.Param("userId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid user id.")
		return
	}

	user, profile, err := h.userService.GetUserWithProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "Could not find user for the provided id.")
			return
		}
		apierrors.InternalError(c)
		return
	}

	resp := gin.H{"user": dto.ToUserDTO(*user), "profile": nil}
	if profile != nil {
		resp["profile"] = dto.ToProfileDTO(*profile)
	}
	c.JSON(http.StatusOK, resp)
}

// Signup registers a new user with an empty profile and returns a token.
func (h *UserHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"omitempty,oneof=admin user"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	user, signed, err := h.authService.Signup(services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			apierrors.Conflict(c, "Could not create user, email already exists.")
			return
		}
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  signed,
	})
}

// Login authenticates a user and returns a token.
func (h *UserHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	user, signed, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, "Could not find anyone with these credentials.")
			return
		}
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  signed,
	})
}

// UpdateProfile creates the caller's profile when :profileId is "new",
// otherwise updates the addressed profile. Accepts an optional multipart
// image upload; a staged file is removed when the request fails afterwards.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	profileParam := c.Param("profileId")
	if profileParam == "new" {
		profile, err := h.profileService.CreateProfile(actorID)
		if err != nil {
			apierrors.InternalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": dto.ToProfileDTO(*profile)})
		return
	}

	id, err := strconv.ParseUint(profileParam, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid profile id.")
		return
	}
	profileID := models.ProfileID(id)

	input, stagedPath, ok := h.bindProfileInput(c)
	if !ok {
		return
	}

	profile, err := h.profileService.UpdateProfile(profileID, actorID, input)
	if err != nil {
		utils.RemoveStagedFile(stagedPath)
		switch {
		case errors.Is(err, services.ErrProfileNotFound):
			apierrors.NotFound(c, "Could not find profile for the provided id.")
		case errors.Is(err, services.ErrNotProfileOwner):
			apierrors.Unauthorized(c, "You are not allowed to edit this profile.")
		default:
			apierrors.InternalError(c)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": dto.ToProfileDTO(*profile)})
}

// bindProfileInput reads the profile fields from either a multipart form
// (with optional image file) or a JSON body. It reports the staged image
// path, if any, so the caller can clean up on failure.
func (h *UserHandler) bindProfileInput(c *gin.Context) (services.UpdateProfileInput, string, bool) {
	var input services.UpdateProfileInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		for key, target := range map[string]**string{
			"image":        &input.Image,
			"job_title":    &input.JobTitle,
			"department":   &input.Department,
			"organization": &input.Organization,
			"location":     &input.Location,
		} {
			if v, ok := c.GetPostForm(key); ok {
				value := v
				*target = &value
			}
		}

		if file, err := c.FormFile("image"); err == nil {
			path, err := utils.SaveUploadedImage(c, file, h.uploadDir)
			if err != nil {
				if errors.Is(err, utils.ErrUnsupportedImageType) {
					apierrors.BadRequest(c, "Unsupported image type.")
				} else {
					apierrors.InternalError(c)
				}
				return input, "", false
			}
			input.Image = &path
			return input, path, true
		}

		return input, "", true
	}

	type updateProfileRequest struct {
		Image        *string `json:"image"`
		JobTitle     *string `json:"job_title"`
		Department   *string `json:"department"`
		Organization *string `json:"organization"`
		Location     *string `json:"location"`
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return input, "", false
	}

	input.Image = req.Image
	input.JobTitle = req.JobTitle
	input.Department = req.Department
	input.Organization = req.Organization
	input.Location = req.Location
	return input, "", true
}

func parseUserID(param string) (models.UserID, bool) {
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, false
	}
	return models.UserID(id), true
}
