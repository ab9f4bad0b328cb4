package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ListPendingProofs returns screenshot uploads awaiting review
func ListPendingProofs(c *fiber.Ctx) error {
	db := database.Database.Db

	var proofs []courseModels.PhaseUnlock
	err := db.Where("status = ? AND screenshot_url <> ?", "PENDING", "").
		Order("uploaded_at asc").Find(&proofs).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending uploads!", nil)
	}

	type proofWithStudent struct {
		courseModels.PhaseUnlock
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
	}

	result := make([]proofWithStudent, 0, len(proofs))
	for _, proof := range proofs {
		entry := proofWithStudent{PhaseUnlock: proof}
		var student models.User
		if db.Where("id = ?", proof.UserID).First(&student).Error == nil {
			entry.StudentName = student.FullName
			entry.StudentEmail = student.Email
		}
		result = append(result, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending uploads fetched successfully!", result)
}

// ReviewProof approves or rejects a screenshot upload. Approval flips the
// phase gate open; rejection records the reason so the student can re-upload.
func ReviewProof(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	review := c.Locals("validatedProofReview").(*struct {
		ProofID         uint   `json:"proof_id" validate:"required"`
		Approve         *bool  `json:"approve" validate:"required"`
		RejectionReason string `json:"rejection_reason"`
	})

	db := database.Database.Db

	var proof courseModels.PhaseUnlock
	if err := db.Where("id = ?", review.ProofID).First(&proof).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Upload not found!", nil)
	}

	if proof.Status != "PENDING" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Upload has already been reviewed!", nil)
	}

	approved := *review.Approve
	if !approved && review.RejectionReason == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rejection reason is required!", nil)
	}

	now := time.Now()
	proof.ReviewedBy = &adminID
	proof.ReviewedAt = &now
	if approved {
		proof.Status = "APPROVED"
		proof.RejectionReason = ""
	} else {
		proof.Status = "REJECTED"
		proof.RejectionReason = review.RejectionReason
	}

	if err := db.Save(&proof).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save review!", nil)
	}

	actionType := "proof_approved"
	if !approved {
		actionType = "proof_rejected"
	}
	logAdminAction(db, adminID, actionType, "proof_upload", proof.ID, map[string]interface{}{
		"user_id":          proof.UserID,
		"phase_number":     proof.PhaseNumber,
		"rejection_reason": proof.RejectionReason,
	})

	var student models.User
	if db.Where("id = ?", proof.UserID).First(&student).Error == nil {
		utils.SendProofReviewEmail(student.Email, student.FullName, proof.PhaseNumber, approved, proof.RejectionReason)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review saved successfully!", proof)
}
