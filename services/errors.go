package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrSeasonNotFound     = errors.New("season not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrScheduleNotFound   = errors.New("group schedule not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrRosterSlotNotFound = errors.New("roster slot not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed         = errors.New("validation failed")
	ErrInsufficientParticipants = errors.New("at least 2 approved teams are required to generate groups")
	ErrTeamNameRequired         = errors.New("team name is required")
	ErrInvalidMatchStage        = errors.New("invalid match stage")
	ErrInvalidTeamStatusChange  = errors.New("team status can only change while pending")
	ErrEntryDeadlineRequired    = errors.New("entry deadline is required")
	ErrPasswordTooShort         = errors.New("password is too short")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrPlayerCodeUnknown        = errors.New("player code does not belong to a verified player")

	// Ошибки конфликтов
	ErrSeasonNumberConflict = errors.New("season number already exists")
	ErrUserEmailConflict    = errors.New("email address is already in use")

	// Ошибки доступа
	ErrMatchDeletionForbidden = errors.New("fixed matches cannot be deleted")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Хранилище файлов не настроено
	ErrUploadsUnavailable = errors.New("file uploads are not configured")
)
