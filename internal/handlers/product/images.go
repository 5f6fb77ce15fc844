package product

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"velora_back_end/internal/config"
	"velora_back_end/internal/database"
)

// =========================
// 🟢 UPLOAD IMAGE PRODUIT
// =========================

// UploadImage envoie une image produit vers MinIO et renvoie son URL
// relative (servie derrière /uploads/).
func UploadImage(c *gin.Context) {
	if database.MinIO == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stockage d'images indisponible"})
		return
	}

	// 1️⃣ Récupérer le fichier
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier manquant"})
		return
	}
	defer file.Close()

	// 2️⃣ Générer un nom unique
	ext := filepath.Ext(header.Filename)
	objectName := fmt.Sprintf("products/%d%s", time.Now().UnixNano(), ext)

	// 3️⃣ Upload vers MinIO
	_, err = database.MinIO.PutObject(
		c.Request.Context(),
		config.App.MinioBucket,
		objectName,
		file,
		header.Size,
		minio.PutObjectOptions{ContentType: header.Header.Get("Content-Type")},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload MinIO: " + err.Error()})
		return
	}

	imageURL := fmt.Sprintf("/uploads/%s", objectName)

	c.JSON(http.StatusOK, gin.H{
		"message":   "✅ Image uploadée avec succès",
		"image_url": imageURL,
	})
}
