package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/LightArtz/Tappit/internal/models"
	"github.com/google/uuid"
)

// WizardStep - шаг формы заказа.
type WizardStep string

const (
	StepDetails WizardStep = "details"
	StepPayment WizardStep = "payment"
	StepConfirm WizardStep = "confirm"
)

var (
	ErrSessionNotFound  = errors.New("wizard session not found")
	ErrMissingFields    = errors.New("required fields are missing")
	ErrMissingProof     = errors.New("payment proof is not attached")
	ErrNoNextStep       = errors.New("already at the last step")
	ErrNotConfirmStep   = errors.New("submit is only allowed from the confirm step")
	ErrSubmitInProgress = errors.New("submission already in progress")
)

// OrderDetails - поля первого шага формы.
type OrderDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	NFCLink  string `json:"nfc_link"`
}

// WizardFile - выбранный пользователем файл. Хранится в памяти сессии
// и загружается в хранилище только на этапе отправки.
type WizardFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// wizardSession - состояние одной формы заказа.
type wizardSession struct {
	id         uuid.UUID
	step       WizardStep
	details    OrderDetails
	proof      *WizardFile
	design     *WizardFile
	submitting bool
	lastActive time.Time
}

// WizardState - снимок состояния сессии для ответа клиенту.
type WizardState struct {
	ID             string       `json:"id"`
	Step           WizardStep   `json:"step"`
	Details        OrderDetails `json:"details"`
	ProofFilename  string       `json:"proof_filename,omitempty"`
	DesignFilename string       `json:"design_filename,omitempty"`
}

// WizardService управляет трёхшаговыми сессиями оформления заказа:
// details -> payment -> confirm, с проверками на каждом переходе
// и двухфазной отправкой (загрузка файлов, затем вставка заказа).
type WizardService struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*wizardSession

	orderStorage OrderStorage
	blobs        BlobStore
	notifier     Notifier
	closeDelay   time.Duration

	// now вынесено для детерминированных ключей в тестах
	now func() time.Time
}

// NewWizardService создаёт сервис визарда заказов.
func NewWizardService(orderStorage OrderStorage, blobs BlobStore, notifier Notifier, closeDelay time.Duration) *WizardService {
	if closeDelay <= 0 {
		closeDelay = 1500 * time.Millisecond
	}
	return &WizardService{
		sessions:     make(map[uuid.UUID]*wizardSession),
		orderStorage: orderStorage,
		blobs:        blobs,
		notifier:     notifier,
		closeDelay:   closeDelay,
		now:          time.Now,
	}
}

// Start открывает новую сессию на шаге details.
func (s *WizardService) Start() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.sessions[id] = &wizardSession{
		id:         id,
		step:       StepDetails,
		lastActive: s.now(),
	}
	return id
}

// State возвращает снимок состояния сессии.
func (s *WizardService) State(id uuid.UUID) (*WizardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	state := &WizardState{
		ID:      sess.id.String(),
		Step:    sess.step,
		Details: sess.details,
	}
	if sess.proof != nil {
		state.ProofFilename = sess.proof.Filename
	}
	if sess.design != nil {
		state.DesignFilename = sess.design.Filename
	}
	return state, nil
}

// SetDetails сохраняет поля первого шага. Сам переход делает Next.
func (s *WizardService) SetDetails(id uuid.UUID, details OrderDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.details = details
	sess.lastActive = s.now()
	return nil
}

// AttachProof сохраняет выбранное подтверждение оплаты.
func (s *WizardService) AttachProof(id uuid.UUID, file WizardFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.proof = &file
	sess.lastActive = s.now()
	return nil
}

// AttachDesign сохраняет выбранный кастомный дизайн (необязательный).
func (s *WizardService) AttachDesign(id uuid.UUID, file WizardFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.design = &file
	sess.lastActive = s.now()
	return nil
}

// Next продвигает сессию на следующий шаг, если проверки пройдены.
// Непройденная проверка оставляет шаг как есть и кладёт уведомление об ошибке.
func (s *WizardService) Next(id uuid.UUID) (WizardStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return "", ErrSessionNotFound
	}
	sess.lastActive = s.now()

	switch sess.step {
	case StepDetails:
		d := sess.details
		if d.FullName == "" || d.Email == "" || d.Phone == "" || d.NFCLink == "" {
			s.notifier.Error("Please fill in all required fields")
			return sess.step, ErrMissingFields
		}
		sess.step = StepPayment
	case StepPayment:
		if sess.proof == nil {
			s.notifier.Error("Please upload your proof of payment")
			return sess.step, ErrMissingProof
		}
		sess.step = StepConfirm
	default:
		return sess.step, ErrNoNextStep
	}

	return sess.step, nil
}

// Back возвращает сессию на предыдущий шаг.
// Введённые поля и выбранные файлы при этом сохраняются.
func (s *WizardService) Back(id uuid.UUID) (WizardStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return "", ErrSessionNotFound
	}
	sess.lastActive = s.now()

	switch sess.step {
	case StepConfirm:
		sess.step = StepPayment
	case StepPayment:
		sess.step = StepDetails
	}
	return sess.step, nil
}

// Submit выполняет отправку заказа. Допустим только с шага confirm.
// Последовательность: загрузка подтверждения оплаты, затем кастомного дизайна
// (если есть), затем одна атомарная вставка заказа. Любая неудача до вставки
// отменяет отправку целиком; состояние сессии остаётся нетронутым для повтора.
func (s *WizardService) Submit(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if sess.step != StepConfirm {
		s.mu.Unlock()
		return nil, ErrNotConfirmStep
	}
	// Защита от повторного входа: пока первая отправка не завершилась,
	// вторая не делает ничего.
	if sess.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	sess.submitting = true
	sess.lastActive = s.now()
	details := sess.details
	proof := sess.proof
	design := sess.design
	s.mu.Unlock()

	// Шаг 1: подтверждение оплаты
	var proofURL *string
	if proof != nil {
		key := fmt.Sprintf("payment_proofs/%d_%s", s.now().UnixMilli(), proof.Filename)
		url, err := s.blobs.Upload(ctx, key, proof.ContentType, bytes.NewReader(proof.Data))
		if err != nil {
			s.notifier.Error("Failed to upload payment proof. Please try again.")
			s.releaseSubmit(id)
			return nil, fmt.Errorf("upload payment proof: %w", err)
		}
		proofURL = &url
	}

	// Шаг 2: кастомный дизайн, если выбран; иначе стандартная метка
	orderDesign := models.Design{Kind: models.DesignStandard}
	if design != nil {
		key := fmt.Sprintf("design_uploads/%d_%s", s.now().UnixMilli(), design.Filename)
		url, err := s.blobs.Upload(ctx, key, design.ContentType, bytes.NewReader(design.Data))
		if err != nil {
			s.notifier.Error("Failed to upload custom design. Please try again.")
			s.releaseSubmit(id)
			return nil, fmt.Errorf("upload custom design: %w", err)
		}
		orderDesign = models.Design{Kind: models.DesignCustom, URL: url}
	}

	// Шаг 3: одна атомарная вставка заказа
	order := &models.Order{
		FullName:        details.FullName,
		Email:           details.Email,
		Phone:           details.Phone,
		NFCLink:         details.NFCLink,
		Design:          orderDesign,
		PaymentProofURL: proofURL,
		Status:          models.OrderStatusPendingVerification,
	}
	if err := s.orderStorage.Create(ctx, order); err != nil {
		s.notifier.Error("Failed to place order. Please try again.")
		s.releaseSubmit(id)
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.notifier.Success("Order placed successfully! We'll contact you soon.")

	// Сброс формы: пустой первый шаг, файлы очищены.
	// Сессия закрывается с задержкой, чтобы уведомление успело показаться.
	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		sess.details = OrderDetails{}
		sess.proof = nil
		sess.design = nil
		sess.step = StepDetails
		sess.submitting = false
	}
	s.mu.Unlock()

	time.AfterFunc(s.closeDelay, func() {
		s.Close(id)
	})

	return order, nil
}

// Close удаляет сессию.
func (s *WizardService) Close(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// releaseSubmit снимает флаг отправки, не трогая остальное состояние.
func (s *WizardService) releaseSubmit(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.submitting = false
	}
}

// ExpireIdle удаляет брошенные сессии, неактивные дольше ttl.
// Возвращает количество удалённых. Отправляющиеся сессии не трогаем.
func (s *WizardService) ExpireIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.submitting {
			continue
		}
		if sess.lastActive.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// SessionCount возвращает число живых сессий.
func (s *WizardService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
