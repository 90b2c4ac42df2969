package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/jpeg"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
	"github.com/yungbote/ccis-backend/internal/repos"
)

// Default initials-avatar palette. A learner's color is picked by hashing the
// learner ID so regeneration is stable.
var avatarPalette = []color.NRGBA{
	{R: 0x4C, G: 0x6E, B: 0xF5, A: 0xFF},
	{R: 0x12, G: 0xB8, B: 0x86, A: 0xFF},
	{R: 0xF5, G: 0x9F, B: 0x00, A: 0xFF},
	{R: 0xE6, G: 0x4A, B: 0x3C, A: 0xFF},
	{R: 0x7C, G: 0x4D, B: 0xFF, A: 0xFF},
	{R: 0x0C, G: 0xA6, B: 0x78, A: 0xFF},
}

type AvatarService interface {
	CreateLearnerAvatar(ctx context.Context, tx *gorm.DB, l *learner.Learner) error
	SetLearnerAvatarFromImage(ctx context.Context, tx *gorm.DB, l *learner.Learner, raw []byte) error
	GenerateLearnerAvatar(l *learner.Learner) (bytes.Buffer, error)
}

type avatarService struct {
	db          *gorm.DB
	log         *logger.Logger
	learnerRepo repos.LearnerRepo
	dir         string
	fontFace    font.Face
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, learnerRepo repos.LearnerRepo, dir string) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	if strings.TrimSpace(dir) == "" {
		dir = "data/avatars"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}

	face, err := loadFontFace(os.Getenv("AVATAR_FONT"), 206)
	if err != nil {
		return nil, fmt.Errorf("load avatar font: %w", err)
	}

	return &avatarService{
		db:          db,
		log:         serviceLog,
		learnerRepo: learnerRepo,
		dir:         dir,
		fontFace:    face,
	}, nil
}

func (as *avatarService) CreateLearnerAvatar(ctx context.Context, tx *gorm.DB, l *learner.Learner) error {
	if l == nil || l.ID == uuid.Nil {
		return fmt.Errorf("%w: learner required", pkgerrors.ErrInvalidArgument)
	}

	buf, err := as.GenerateLearnerAvatar(l)
	if err != nil {
		return err
	}
	return as.writeAvatar(ctx, tx, l, buf.Bytes())
}

func (as *avatarService) SetLearnerAvatarFromImage(ctx context.Context, tx *gorm.DB, l *learner.Learner, raw []byte) error {
	if l == nil || l.ID == uuid.Nil {
		return fmt.Errorf("%w: learner required", pkgerrors.ErrInvalidArgument)
	}

	processed, err := processUploadedAvatar(raw, 512)
	if err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err)
	}
	return as.writeAvatar(ctx, tx, l, processed.Bytes())
}

func (as *avatarService) GenerateLearnerAvatar(l *learner.Learner) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(colorForLearner(l.ID))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(l.FirstName, l.LastName)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("encode avatar png: %w", err)
	}
	return buf, nil
}

// writeAvatar stores the image under a versioned path so stale files are
// never served, then points the learner row at it. The old file is removed
// best-effort after the new one lands.
func (as *avatarService) writeAvatar(ctx context.Context, tx *gorm.DB, l *learner.Learner, data []byte) error {
	oldPath := strings.TrimSpace(l.AvatarPath)
	newPath := filepath.Join(as.dir, fmt.Sprintf("%s_%d.png", l.ID.String(), time.Now().UnixNano()))

	if err := os.WriteFile(newPath, data, 0o644); err != nil {
		return fmt.Errorf("write avatar file: %w", err)
	}
	l.AvatarPath = newPath

	if tx != nil {
		if err := as.learnerRepo.UpdateAvatarPath(ctx, tx, l.ID, newPath); err != nil {
			return fmt.Errorf("update avatar path: %w", err)
		}
	}

	if oldPath != "" && oldPath != newPath {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			as.log.Warn("failed to delete old avatar", "path", oldPath, "error", err)
		}
	}
	return nil
}

func colorForLearner(id uuid.UUID) color.NRGBA {
	var sum int
	for _, b := range id {
		sum += int(b)
	}
	return avatarPalette[sum%len(avatarPalette)]
}

func computeInitials(first, last string) string {
	fInit := "?"
	if len(first) > 0 {
		fInit = strings.ToUpper(first[:1])
	}
	lInit := "?"
	if len(last) > 0 {
		lInit = strings.ToUpper(last[:1])
	}
	return fInit + lInit
}

// processUploadedAvatar decodes, center-crops to a square and scales to the
// target edge length.
func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode avatar image: %w", err)
	}

	b := src.Bounds()
	edge := b.Dx()
	if b.Dy() < edge {
		edge = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-edge)/2
	y0 := b.Min.Y + (b.Dy()-edge)/2
	crop := image.Rect(x0, y0, x0+edge, y0+edge)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)

	if err := png.Encode(&out, dst); err != nil {
		return out, fmt.Errorf("encode avatar png: %w", err)
	}
	return out, nil
}

// loadFontFace parses the TTF at fontPath, falling back to the bundled Go
// bold face when unset.
func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes := gobold.TTF
	if strings.TrimSpace(fontPath) != "" {
		b, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font file: %w", err)
		}
		fontBytes = b
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse ttf: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
