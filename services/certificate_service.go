package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gorm.io/gorm"

	config "github.com/journeyapp/journey_backend/configs"
	"github.com/journeyapp/journey_backend/models"
)

// CertificateService renders a completion certificate for a finished reading
// plan, prints it to PDF headlessly and uploads it to Cloudinary.
type CertificateService struct {
	db *gorm.DB
}

func NewCertificateService(db *gorm.DB) *CertificateService {
	return &CertificateService{db: db}
}

func (s *CertificateService) GenerateForPlanCompletion(user models.User, plan models.ReadingPlan) {
	var existing models.Certificate
	if err := s.db.Where("user_id = ? AND reading_plan_id = ?", user.ID, plan.ID).First(&existing).Error; err == nil {
		return
	}

	htmlData, err := s.renderHTML(user.Username, plan)
	if err != nil {
		log.Printf("🔥 Failed to render certificate HTML: %v", err)
		return
	}

	pdfBytes, err := printToPDF(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate PDF: %v", err)
		return
	}

	uploadURL, err := uploadCertificate(pdfBytes, user.ID.String(), plan.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	certificate := models.Certificate{
		UserID:         user.ID,
		ReadingPlanID:  plan.ID,
		PlanTitle:      plan.Title,
		CertificateURL: uploadURL,
		CompletionDate: time.Now().UTC(),
	}
	if err := s.db.Create(&certificate).Error; err != nil {
		log.Printf("🔥 Failed to create certificate record for user %s: %v", user.ID, err)
		return
	}
	log.Printf("✅ Generated certificate for user %s completing plan '%s'.", user.ID, plan.Title)
}

func (s *CertificateService) renderHTML(username string, plan models.ReadingPlan) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		Username       string
		PlanTitle      string
		DurationDays   int
		CompletionDate string
	}{
		Username:       username,
		PlanTitle:      plan.Title,
		DurationDays:   plan.DurationDays,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func printToPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificate(pdfBytes []byte, userID, planID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("certificate_%s_%s", userID, planID)
	result, err := cld.Upload.Upload(ctx, bytes.NewReader(pdfBytes), uploader.UploadParams{
		PublicID: publicID,
		Folder:   "journey_certificates",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
