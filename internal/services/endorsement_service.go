package services

import (
	"fmt"
	"log"

	"skilllink/internal/models"
	"skilllink/internal/repositories"
	"skilllink/pkg/rabbitmq"
)

// EndorsementService handles business logic related to endorsements. Reads are
// scoped to the acting user: only endorsements they gave or received are
// visible, so anyone else's endorsements behave as if they do not exist.
type EndorsementService struct {
	repo     repositories.EndorsementRepository
	cardRepo repositories.UserSkillRepository
	mqClient *rabbitmq.Client
}

// NewEndorsementService creates a new EndorsementService.
func NewEndorsementService(repo repositories.EndorsementRepository, cardRepo repositories.UserSkillRepository, mqClient *rabbitmq.Client) *EndorsementService {
	return &EndorsementService{
		repo:     repo,
		cardRepo: cardRepo,
		mqClient: mqClient,
	}
}

// EndorsementUpdate carries endorsement field changes. Nil fields are left
// untouched.
type EndorsementUpdate struct {
	Comment        *string
	EndorserRating *int
}

// ListEndorsements returns endorsements the actor gave plus endorsements
// received on the actor's cards, newest first.
func (s *EndorsementService) ListEndorsements(actorID string) ([]models.Endorsement, error) {
	return s.repo.ListVisibleTo(actorID)
}

// GetEndorsement retrieves an endorsement the actor is a party to.
func (s *EndorsementService) GetEndorsement(actorID, id string) (*models.Endorsement, error) {
	return s.repo.GetByIDVisibleTo(id, actorID)
}

// CreateEndorsement endorses a skill card on behalf of the actor. Any endorser
// value a client sends is ignored; the actor is always the endorser. The card
// reference must resolve.
func (s *EndorsementService) CreateEndorsement(actorID, skillCardID, comment string, endorserRating *int) (*models.Endorsement, error) {
	card, err := s.cardRepo.GetByID(skillCardID)
	if err != nil {
		return nil, fmt.Errorf("skill_card_id does not resolve to an existing skill card: %w", err)
	}

	endorsement := &models.Endorsement{
		EndorserID:     actorID,
		SkillCardID:    card.ID,
		Comment:        comment,
		EndorserRating: endorserRating,
	}
	if err := s.repo.Create(endorsement); err != nil {
		return nil, err
	}

	// Publishing is best-effort: a broker failure never fails the request.
	if s.mqClient != nil {
		event := map[string]interface{}{
			"event":       "endorsement.created",
			"endorsement": endorsement.ID,
			"endorserID":  endorsement.EndorserID,
			"skillCardID": endorsement.SkillCardID,
		}
		if err := s.mqClient.PublishEndorsementCreated(event); err != nil {
			log.Printf("Warning: Failed to publish endorsement created event for %s: %v", endorsement.ID, err)
		}
	} else {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
	}

	return endorsement, nil
}

// UpdateEndorsement applies changes to an endorsement. The recipient can read
// it, but only the endorser who gave it may change it.
func (s *EndorsementService) UpdateEndorsement(actorID, id string, update EndorsementUpdate) (*models.Endorsement, error) {
	endorsement, err := s.repo.GetByIDVisibleTo(id, actorID)
	if err != nil {
		return nil, err
	}
	if endorsement.OwnerID() != actorID {
		return nil, fmt.Errorf("endorsement can only be modified by its endorser")
	}

	if update.Comment != nil {
		endorsement.Comment = *update.Comment
	}
	if update.EndorserRating != nil {
		endorsement.EndorserRating = update.EndorserRating
	}

	if err := s.repo.Update(endorsement); err != nil {
		return nil, err
	}
	return endorsement, nil
}

// DeleteEndorsement withdraws an endorsement. Only the endorser who gave it
// may delete it.
func (s *EndorsementService) DeleteEndorsement(actorID, id string) error {
	endorsement, err := s.repo.GetByIDVisibleTo(id, actorID)
	if err != nil {
		return err
	}
	if endorsement.OwnerID() != actorID {
		return fmt.Errorf("endorsement can only be deleted by its endorser")
	}
	return s.repo.Delete(endorsement.ID)
}
