package usecase

import (
	"context"
	"io"
	"sync"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
	"agriconnect/pkg/utils"
)

const (
	titleProfileSaved  = "Profil mis à jour"
	msgProfileSaved    = "Vos informations ont été enregistrées avec succès"
	msgProfileSaveFail = "Impossible de mettre à jour le profil"
	titlePhotoSaved    = "Photo mise à jour"
	msgPhotoSaved      = "Votre photo de profil a été mise à jour avec succès"
	msgPhotoFailed     = "Impossible de télécharger la photo"
	msgUnknownCulture  = "Culture inconnue"
	msgUnknownRegion   = "Région inconnue"
)

// ProfileView is the profile form: a local draft edited field by field and
// sent as a whole on save. The photo upload is a separate request.
type ProfileView struct {
	mu    sync.Mutex
	draft entity.Profile
	saved bool
}

func newProfileView(user *entity.User) *ProfileView {
	return &ProfileView{
		draft: entity.Profile{
			Name:     user.Name,
			Email:    user.Email,
			Cultures: []string{},
		},
	}
}

type ProfileSnapshot struct {
	Draft            entity.Profile `json:"draft"`
	Initials         string         `json:"initials"`
	Color            string         `json:"color"`
	PhoneDisplay     string         `json:"phoneDisplay,omitempty"`
	Regions          []string       `json:"regions"`
	Cultures         []string       `json:"cultures"`
	AvailableToAdd   []string       `json:"availableCultures"`
	SavedSinceLoaded bool           `json:"saved"`
}

func (v *ProfileView) snapshot() *ProfileSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	draft := v.draft.Clone()
	available := make([]string, 0, len(entity.Cultures))
	for _, c := range entity.Cultures {
		if !containsString(draft.Cultures, c) {
			available = append(available, c)
		}
	}

	return &ProfileSnapshot{
		Draft:            draft,
		Initials:         utils.Initials(draft.Name),
		Color:            utils.ColorFromString(draft.Name),
		PhoneDisplay:     utils.FormatPhoneNumber(draft.Phone),
		Regions:          entity.Regions,
		Cultures:         entity.Cultures,
		AvailableToAdd:   available,
		SavedSinceLoaded: v.saved,
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type ProfileUseCase struct {
	profileRepo   repository.ProfileRepository
	photoUploader service.PhotoUploader
}

func NewProfileUseCase(profileRepo repository.ProfileRepository, photoUploader service.PhotoUploader) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:   profileRepo,
		photoUploader: photoUploader,
	}
}

type ProfileResult struct {
	Snapshot *ProfileSnapshot
	Notice   *response.Notice
}

// Mount starts a fresh draft from the logged-in user's name and email.
func (uc *ProfileUseCase) Mount(ws *Workspace, user *entity.User) *ProfileResult {
	v := newProfileView(user)
	ws.setProfileView(v)
	return &ProfileResult{Snapshot: v.snapshot()}
}

func (uc *ProfileUseCase) view(ws *Workspace, user *entity.User) *ProfileView {
	if v := ws.profileView(); v != nil {
		return v
	}
	v := newProfileView(user)
	ws.setProfileView(v)
	return v
}

// Update edits draft fields. Only the region is checked, against the catalog.
func (uc *ProfileUseCase) Update(ws *Workspace, user *entity.User, fields entity.ProfileFields) (*ProfileResult, error) {
	v := uc.view(ws, user)
	if fields.Region != nil && *fields.Region != "" && !entity.IsRegion(*fields.Region) {
		return &ProfileResult{Snapshot: v.snapshot()}, errors.Validation(msgUnknownRegion)
	}

	v.mu.Lock()
	fields.Apply(&v.draft)
	v.mu.Unlock()
	return &ProfileResult{Snapshot: v.snapshot()}, nil
}

// AddCulture appends a catalog culture; adding one already present is a no-op.
func (uc *ProfileUseCase) AddCulture(ws *Workspace, user *entity.User, culture string) (*ProfileResult, error) {
	v := uc.view(ws, user)
	if !entity.IsCulture(culture) {
		return &ProfileResult{Snapshot: v.snapshot()}, errors.Validation(msgUnknownCulture)
	}

	v.mu.Lock()
	if !containsString(v.draft.Cultures, culture) {
		v.draft.Cultures = append(v.draft.Cultures, culture)
	}
	v.mu.Unlock()
	return &ProfileResult{Snapshot: v.snapshot()}, nil
}

func (uc *ProfileUseCase) RemoveCulture(ws *Workspace, user *entity.User, culture string) *ProfileResult {
	v := uc.view(ws, user)

	v.mu.Lock()
	kept := make([]string, 0, len(v.draft.Cultures))
	for _, c := range v.draft.Cultures {
		if c != culture {
			kept = append(kept, c)
		}
	}
	v.draft.Cultures = kept
	v.mu.Unlock()
	return &ProfileResult{Snapshot: v.snapshot()}
}

// Save sends the whole draft. The session user is left as it was; the
// account fields it holds are changed through the auth store only.
func (uc *ProfileUseCase) Save(ctx context.Context, ws *Workspace, user *entity.User) (*ProfileResult, error) {
	v := uc.view(ws, user)

	v.mu.Lock()
	draft := v.draft.Clone()
	v.mu.Unlock()

	if err := uc.profileRepo.Save(ctx, draft); err != nil {
		return &ProfileResult{Snapshot: v.snapshot(), Notice: response.ErrorNotice(msgProfileSaveFail)}, err
	}

	v.mu.Lock()
	v.saved = true
	v.mu.Unlock()
	return &ProfileResult{
		Snapshot: v.snapshot(),
		Notice:   response.SuccessNotice(titleProfileSaved, msgProfileSaved),
	}, nil
}

// UploadPhoto sends the file on its own and stores the returned URL in the
// draft.
func (uc *ProfileUseCase) UploadPhoto(ctx context.Context, ws *Workspace, user *entity.User, filename, contentType string, file io.Reader) (*ProfileResult, error) {
	v := uc.view(ws, user)

	url, err := uc.photoUploader.UploadProfilePhoto(ctx, filename, contentType, file)
	if err != nil {
		return &ProfileResult{Snapshot: v.snapshot(), Notice: response.ErrorNotice(msgPhotoFailed)}, err
	}

	v.mu.Lock()
	v.draft.PhotoURL = url
	v.mu.Unlock()
	return &ProfileResult{
		Snapshot: v.snapshot(),
		Notice:   response.SuccessNotice(titlePhotoSaved, msgPhotoSaved),
	}, nil
}
