package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/internal/domain/entity"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
)

func strPtr(s string) *string { return &s }

func TestProfileUseCase_DraftSeededFromUser(t *testing.T) {
	uc := NewProfileUseCase(&fakeProfileRepo{}, &fakeUploader{})

	result := uc.Mount(&Workspace{}, seller)

	assert.Equal(t, "Aya Kouassi", result.Snapshot.Draft.Name)
	assert.Equal(t, "aya@example.ci", result.Snapshot.Draft.Email)
	assert.Empty(t, result.Snapshot.Draft.Cultures)
	assert.Equal(t, "AK", result.Snapshot.Initials)
	assert.Len(t, result.Snapshot.AvailableToAdd, len(entity.Cultures))
}

func TestProfileUseCase_Cultures(t *testing.T) {
	uc := NewProfileUseCase(&fakeProfileRepo{}, &fakeUploader{})
	ws := &Workspace{}
	uc.Mount(ws, seller)

	_, err := uc.AddCulture(ws, seller, "Cacao")
	require.NoError(t, err)
	_, err = uc.AddCulture(ws, seller, "Riz")
	require.NoError(t, err)
	result, err := uc.AddCulture(ws, seller, "Cacao")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cacao", "Riz"}, result.Snapshot.Draft.Cultures)
	assert.NotContains(t, result.Snapshot.AvailableToAdd, "Cacao")

	_, err = uc.AddCulture(ws, seller, "Blé")
	assert.True(t, errors.Is(err, errors.CodeValidation))

	result = uc.RemoveCulture(ws, seller, "Cacao")
	assert.Equal(t, []string{"Riz"}, result.Snapshot.Draft.Cultures)
}

func TestProfileUseCase_Update(t *testing.T) {
	uc := NewProfileUseCase(&fakeProfileRepo{}, &fakeUploader{})
	ws := &Workspace{}

	result, err := uc.Update(ws, seller, entity.ProfileFields{
		Phone:  strPtr("0712345678"),
		Region: strPtr("Lagunes"),
		Bio:    strPtr("Productrice de cacao"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Aya Kouassi", result.Snapshot.Draft.Name, "unset fields are kept")
	assert.Equal(t, "Lagunes", result.Snapshot.Draft.Region)
	assert.Equal(t, "07 12 34 56 78", result.Snapshot.PhoneDisplay)

	_, err = uc.Update(ws, seller, entity.ProfileFields{Region: strPtr("Atlantide")})
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestProfileUseCase_SaveSendsWholeDraft(t *testing.T) {
	repo := &fakeProfileRepo{}
	uc := NewProfileUseCase(repo, &fakeUploader{})
	ws := &Workspace{}
	uc.Mount(ws, seller)
	_, err := uc.AddCulture(ws, seller, "Café")
	require.NoError(t, err)

	result, err := uc.Save(context.Background(), ws, seller)
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "Aya Kouassi", repo.saved[0].Name)
	assert.Equal(t, []string{"Café"}, repo.saved[0].Cultures)
	assert.Equal(t, "Profil mis à jour", result.Notice.Title)
	assert.True(t, result.Snapshot.SavedSinceLoaded)
}

func TestProfileUseCase_SaveFailure(t *testing.T) {
	uc := NewProfileUseCase(&fakeProfileRepo{err: errBackendDown}, &fakeUploader{})

	result, err := uc.Save(context.Background(), &Workspace{}, seller)

	require.Error(t, err)
	assert.Equal(t, response.NoticeDestructive, result.Notice.Variant)
	assert.Equal(t, "Impossible de mettre à jour le profil", result.Notice.Description)
}

func TestProfileUseCase_UploadPhoto(t *testing.T) {
	uploader := &fakeUploader{url: "https://cdn.example/aya.jpg"}
	uc := NewProfileUseCase(&fakeProfileRepo{}, uploader)
	ws := &Workspace{}

	result, err := uc.UploadPhoto(context.Background(), ws, seller, "aya.jpg", "image/jpeg", strings.NewReader("JPEG"))
	require.NoError(t, err)

	assert.Equal(t, "JPEG", uploader.body)
	assert.Equal(t, "https://cdn.example/aya.jpg", result.Snapshot.Draft.PhotoURL)
	assert.Equal(t, "Photo mise à jour", result.Notice.Title)
}

func TestProfileUseCase_UploadPhotoFailure(t *testing.T) {
	uc := NewProfileUseCase(&fakeProfileRepo{}, &fakeUploader{err: errBackendDown})

	result, err := uc.UploadPhoto(context.Background(), &Workspace{}, seller, "aya.jpg", "image/jpeg", strings.NewReader("JPEG"))

	require.Error(t, err)
	assert.Empty(t, result.Snapshot.Draft.PhotoURL)
	assert.Equal(t, "Impossible de télécharger la photo", result.Notice.Description)
}
