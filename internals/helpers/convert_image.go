package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	coverWebPQuality = 85
	thumbWebPQuality = 75
	thumbMaxPx       = 480
)

// decodeCover decode jpg/png/webp dari multipart file.
func decodeCover(src multipart.File, filename string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(src)
		if err != nil {
			return nil, fmt.Errorf("file JPEG tidak valid: %w", err)
		}
		return img, nil
	case ".png":
		img, err := png.Decode(src)
		if err != nil {
			return nil, fmt.Errorf("file PNG tidak valid: %w", err)
		}
		return img, nil
	case ".webp":
		img, err := webp.Decode(src)
		if err != nil {
			return nil, fmt.Errorf("file WebP tidak valid: %w", err)
		}
		return img, nil
	default:
		return nil, fmt.Errorf("format tidak didukung (jpg, jpeg, png, webp)")
	}
}

// UploadCoverToSupabase konversi cover ke WebP + bikin thumbnail, lalu upload
// keduanya ke bucket "image". Return (coverURL, thumbURL, error).
func UploadCoverToSupabase(folder string, fileHeader *multipart.FileHeader) (string, string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, err := decodeCover(src, fileHeader.Filename)
	if err != nil {
		return "", "", err
	}

	// Cover utama → WebP lossy
	coverBuf := new(bytes.Buffer)
	if err := webp.Encode(coverBuf, img, &webp.Options{Lossless: false, Quality: coverWebPQuality}); err != nil {
		return "", "", fmt.Errorf("gagal konversi ke WebP: %w", err)
	}

	// Thumbnail (fit ke kotak 480px, keep aspect)
	thumb := imaging.Fit(img, thumbMaxPx, thumbMaxPx, imaging.Lanczos)
	thumbBuf := new(bytes.Buffer)
	if err := webp.Encode(thumbBuf, thumb, &webp.Options{Lossless: false, Quality: thumbWebPQuality}); err != nil {
		return "", "", fmt.Errorf("gagal konversi thumbnail ke WebP: %w", err)
	}

	base := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	coverName := GenerateUniqueFilename(folder, base+".webp")
	thumbName := strings.TrimSuffix(coverName, ".webp") + "_thumb.webp"

	if err := UploadToSupabase("image", coverName, "image/webp", coverBuf); err != nil {
		return "", "", fmt.Errorf("upload cover gagal: %w", err)
	}
	if err := UploadToSupabase("image", thumbName, "image/webp", thumbBuf); err != nil {
		// thumbnail best-effort; cover sudah keupload
		fmt.Println("⚠️ Upload thumbnail gagal:", err)
		thumbName = ""
	}

	publicBase := fmt.Sprintf("%s/storage/v1/object/public/image",
		os.Getenv("SUPABASE_PROJECT_URL"))

	coverURL := publicBase + "/" + url.PathEscape(coverName)
	thumbURL := ""
	if thumbName != "" {
		thumbURL = publicBase + "/" + url.PathEscape(thumbName)
	}
	return coverURL, thumbURL, nil
}

// ✅ Buat nama unik
func sanitizeFilename(filename string) string {
	// Hapus karakter selain huruf, angka, titik, dash, underscore
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	safe := re.ReplaceAllString(filename, "_")
	return safe
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	uuidStr := uuid.New().String()
	safeFilename := sanitizeFilename(originalFilename)
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuidStr, safeFilename)
}

func UploadToSupabase(bucket, filename, contentType string, data *bytes.Buffer) error {
	supabaseURL := os.Getenv("SUPABASE_PROJECT_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL atau SUPABASE_SERVICE_ROLE_KEY belum diset")
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, filename)

	req, err := http.NewRequest("PUT", url, data)
	if err != nil {
		return fmt.Errorf("gagal membuat request upload: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("gagal mengirim request upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Println("❌ Upload gagal:", string(body))
		return fmt.Errorf("upload gagal status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// ✅ Hapus file dari Supabase
func DeleteFromSupabase(bucket, path string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		os.Getenv("SUPABASE_PROJECT_URL"), bucket, path)

	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete gagal status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func ExtractSupabasePath(fullURL string) (bucket string, path string, err error) {
	u, err := url.Parse(fullURL)
	if err != nil {
		return "", "", err
	}

	parts := strings.SplitN(u.Path, "/object/public/", 2)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("url tidak valid untuk Supabase public object")
	}

	pathParts := strings.SplitN(parts[1], "/", 2)
	if len(pathParts) < 2 {
		return "", "", fmt.Errorf("gagal ekstrak bucket dan path")
	}

	return pathParts[0], pathParts[1], nil
}
