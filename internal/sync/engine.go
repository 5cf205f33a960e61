package sync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// Engine reconciles a loaded project against the remote universe. Resolution
// order for each declared resource is state file, then remote listing by
// name, then create.
type Engine struct {
	client     rbxcloud.Client
	universeID string
	root       string
	project    *Project
	state      *State
	logger     rbxcloud.Logger
	dryRun     bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger rbxcloud.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDryRun makes the engine report planned changes without issuing any
// write to the remote or to the state file.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// NewEngine creates a sync engine for the given project and state, rooted at
// projectRoot.
func NewEngine(client rbxcloud.Client, universeID, projectRoot string, project *Project, state *State, opts ...Option) (*Engine, error) {
	if universeID == "" {
		return nil, constants.ErrUniverseIDRequired
	}

	engine := &Engine{
		client:     client,
		universeID: universeID,
		root:       projectRoot,
		project:    project,
		state:      state,
		logger:     noopLogger{},
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

// Run performs one full sync pass: universe metadata first, then game
// passes, developer products, and badges. A failure on one resource does not
// stop the others; all failures come back joined.
func (e *Engine) Run(ctx context.Context) error {
	var errs []error

	if err := e.syncUniverse(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := e.syncGamePasses(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := e.syncDeveloperProducts(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := e.syncBadges(ctx); err != nil {
		errs = append(errs, err)
	}

	if !e.dryRun {
		if err := e.state.Save(e.root); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Publish uploads every place file marked publish: true.
func (e *Engine) Publish(ctx context.Context) error {
	var published int

	var errs []error

	for _, place := range e.project.Places {
		if !place.Publish {
			continue
		}

		published++

		if err := e.publishPlace(ctx, place); err != nil {
			errs = append(errs, fmt.Errorf("place %d: %w", place.PlaceID, err))
		}
	}

	if published == 0 {
		return constants.ErrNothingToPublish
	}

	return errors.Join(errs...)
}

func (e *Engine) publishPlace(ctx context.Context, place PlaceSpec) error {
	path := place.FilePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.root, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", constants.ErrPlaceFileNotFound, place.FilePath)
		}

		return fmt.Errorf("failed to read place file: %w", err)
	}

	if e.dryRun {
		e.logger.Info("would publish place", map[string]interface{}{
			"place_id": place.PlaceID,
			"file":     place.FilePath,
		})

		return nil
	}

	e.logger.Info("publishing place", map[string]interface{}{
		"place_id": place.PlaceID,
		"file":     place.FilePath,
	})

	version, err := e.client.Places().PublishVersion(ctx, e.universeID, place.PlaceID, content)
	if err != nil {
		return err
	}

	e.logger.Info("published place", map[string]interface{}{
		"place_id": place.PlaceID,
		"version":  version.VersionNumber,
	})

	return nil
}

func (e *Engine) syncUniverse(ctx context.Context) error {
	if !e.project.HasUniversePatch() {
		return nil
	}

	settings := e.project.Universe
	request := &rbxcloud.UniverseUpdateRequest{
		Name:            settings.Name,
		Description:     settings.Description,
		Genre:           settings.Genre,
		PlayableDevices: settings.PlayableDevices,
	}

	if e.dryRun {
		e.logger.Info("would update universe settings", map[string]interface{}{"universe_id": e.universeID})

		return nil
	}

	e.logger.Info("syncing universe settings", map[string]interface{}{"universe_id": e.universeID})

	if _, err := e.client.Universes().Update(ctx, e.universeID, request); err != nil {
		return fmt.Errorf("failed to update universe settings: %w", err)
	}

	return nil
}

func (e *Engine) syncGamePasses(ctx context.Context) error {
	if len(e.project.GamePasses) == 0 {
		return nil
	}

	e.logger.Info("syncing game passes", map[string]interface{}{"count": len(e.project.GamePasses)})

	remote, err := e.client.GamePasses().List(ctx, e.universeID,
		rbxcloud.NewListOptions().WithLimit(constants.MaxGamePassPageSize))
	if err != nil {
		return fmt.Errorf("failed to list game passes: %w", err)
	}

	byName := make(map[string]int64, len(remote.Data))
	for _, pass := range remote.Data {
		byName[pass.Name] = pass.ID
	}

	var errs []error

	for _, spec := range e.project.GamePasses {
		if err := e.syncGamePass(ctx, spec, byName); err != nil {
			errs = append(errs, fmt.Errorf("game pass %q: %w", spec.Name, err))
		}
	}

	return errors.Join(errs...)
}

func (e *Engine) syncGamePass(ctx context.Context, spec GamePassSpec, remote map[string]int64) error {
	var (
		assetID  int64
		iconHash string
	)

	if spec.Icon != "" {
		prior, ok := e.state.GamePasses[spec.Name]

		var err error

		assetID, iconHash, err = e.ensureIcon(ctx, spec.Icon, priorState(prior, ok))
		if err != nil {
			return err
		}
	}

	id, existed := e.resolveID(e.state.GamePasses, spec.Name, remote)
	if !existed {
		if e.dryRun {
			e.logger.Info("would create game pass", map[string]interface{}{"name": spec.Name})

			return nil
		}

		e.logger.Info("creating game pass", map[string]interface{}{"name": spec.Name})

		created, err := e.client.GamePasses().Create(ctx, e.universeID, &rbxcloud.GamePassCreateRequest{
			Name:        spec.Name,
			Description: stringValue(spec.Description),
			Price:       int64Value(spec.PriceInRobux),
			IconAssetID: assetID,
		})
		if err != nil {
			return err
		}

		if created.ID == 0 {
			return constants.ErrCreatedWithoutID
		}

		id = created.ID
	}

	if e.dryRun {
		e.logger.Info("would update game pass", map[string]interface{}{"name": spec.Name, "id": id})

		return nil
	}

	e.logger.Info("updating game pass", map[string]interface{}{"name": spec.Name, "id": id})

	update := &rbxcloud.GamePassUpdateRequest{
		Name:        &spec.Name,
		Description: spec.Description,
		Price:       spec.PriceInRobux,
	}
	if assetID != 0 {
		update.IconAssetID = &assetID
	}

	if _, err := e.client.GamePasses().Update(ctx, e.universeID, id, update); err != nil {
		return err
	}

	e.state.GamePasses[spec.Name] = ResourceState{ID: id, IconHash: iconHash, IconAssetID: assetID}

	return nil
}

func (e *Engine) syncDeveloperProducts(ctx context.Context) error {
	if len(e.project.DeveloperProducts) == 0 {
		return nil
	}

	e.logger.Info("syncing developer products", map[string]interface{}{"count": len(e.project.DeveloperProducts)})

	remote, err := e.client.DeveloperProducts().List(ctx, e.universeID,
		rbxcloud.NewListOptions().WithLimit(constants.MaxDeveloperProductPageSize))
	if err != nil {
		return fmt.Errorf("failed to list developer products: %w", err)
	}

	byName := make(map[string]int64, len(remote.Data))
	for _, product := range remote.Data {
		byName[product.Name] = product.ID
	}

	var errs []error

	for _, spec := range e.project.DeveloperProducts {
		if err := e.syncDeveloperProduct(ctx, spec, byName); err != nil {
			errs = append(errs, fmt.Errorf("developer product %q: %w", spec.Name, err))
		}
	}

	return errors.Join(errs...)
}

func (e *Engine) syncDeveloperProduct(ctx context.Context, spec DeveloperProductSpec, remote map[string]int64) error {
	var (
		assetID  int64
		iconHash string
	)

	if spec.Icon != "" {
		prior, ok := e.state.DeveloperProducts[spec.Name]

		var err error

		assetID, iconHash, err = e.ensureIcon(ctx, spec.Icon, priorState(prior, ok))
		if err != nil {
			return err
		}
	}

	id, existed := e.resolveID(e.state.DeveloperProducts, spec.Name, remote)
	if !existed {
		if e.dryRun {
			e.logger.Info("would create developer product", map[string]interface{}{"name": spec.Name})

			return nil
		}

		e.logger.Info("creating developer product", map[string]interface{}{"name": spec.Name})

		created, err := e.client.DeveloperProducts().Create(ctx, e.universeID, &rbxcloud.DeveloperProductCreateRequest{
			Name:        spec.Name,
			Description: stringValue(spec.Description),
			Price:       spec.PriceInRobux,
			IconAssetID: assetID,
		})
		if err != nil {
			return err
		}

		if created.ID == 0 {
			return constants.ErrCreatedWithoutID
		}

		id = created.ID
	}

	if e.dryRun {
		e.logger.Info("would update developer product", map[string]interface{}{"name": spec.Name, "id": id})

		return nil
	}

	e.logger.Info("updating developer product", map[string]interface{}{"name": spec.Name, "id": id})

	update := &rbxcloud.DeveloperProductUpdateRequest{
		Name:        &spec.Name,
		Description: spec.Description,
		Price:       &spec.PriceInRobux,
	}
	if assetID != 0 {
		update.IconAssetID = &assetID
	}

	if _, err := e.client.DeveloperProducts().Update(ctx, e.universeID, id, update); err != nil {
		return err
	}

	e.state.DeveloperProducts[spec.Name] = ResourceState{ID: id, IconHash: iconHash, IconAssetID: assetID}

	return nil
}

func (e *Engine) syncBadges(ctx context.Context) error {
	if len(e.project.Badges) == 0 {
		return nil
	}

	e.logger.Info("syncing badges", map[string]interface{}{"count": len(e.project.Badges)})

	remote, err := e.client.Badges().List(ctx, e.universeID,
		rbxcloud.NewListOptions().WithLimit(constants.MaxBadgePageSize))
	if err != nil {
		return fmt.Errorf("failed to list badges: %w", err)
	}

	byName := make(map[string]int64, len(remote.Data))
	for _, badge := range remote.Data {
		byName[badge.Name] = badge.ID
	}

	var errs []error

	for _, spec := range e.project.Badges {
		if err := e.syncBadge(ctx, spec, byName); err != nil {
			errs = append(errs, fmt.Errorf("badge %q: %w", spec.Name, err))
		}
	}

	return errors.Join(errs...)
}

func (e *Engine) syncBadge(ctx context.Context, spec BadgeSpec, remote map[string]int64) error {
	var (
		icon        []byte
		iconName    string
		iconHash    string
		iconChanged bool
	)

	if spec.Icon != "" {
		var err error

		icon, iconName, iconHash, err = e.readIcon(spec.Icon)
		if err != nil {
			return err
		}

		prior, ok := e.state.Badges[spec.Name]
		iconChanged = !ok || prior.IconHash != iconHash
	}

	id, existed := e.resolveID(e.state.Badges, spec.Name, remote)
	if !existed {
		if e.dryRun {
			e.logger.Info("would create badge", map[string]interface{}{"name": spec.Name})

			return nil
		}

		e.logger.Info("creating badge", map[string]interface{}{"name": spec.Name})

		created, err := e.client.Badges().Create(ctx, e.universeID, &rbxcloud.BadgeCreateRequest{
			Name:          spec.Name,
			Description:   stringValue(spec.Description),
			PaymentSource: spec.PaymentSource,
		}, icon, iconName)
		if err != nil {
			return err
		}

		if created.ID == 0 {
			return constants.ErrCreatedWithoutID
		}

		e.state.Badges[spec.Name] = ResourceState{ID: created.ID, IconHash: iconHash}

		return nil
	}

	if e.dryRun {
		e.logger.Info("would update badge", map[string]interface{}{"name": spec.Name, "id": id})

		return nil
	}

	e.logger.Info("updating badge", map[string]interface{}{"name": spec.Name, "id": id})

	update := &rbxcloud.BadgeUpdateRequest{
		Name:        &spec.Name,
		Description: spec.Description,
		Enabled:     spec.IsEnabled,
	}

	if _, err := e.client.Badges().Update(ctx, id, update); err != nil {
		return err
	}

	if iconChanged {
		e.logger.Info("updating badge icon", map[string]interface{}{"name": spec.Name, "id": id})

		if _, err := e.client.Badges().UpdateIcon(ctx, id, icon, iconName); err != nil {
			return err
		}
	}

	e.state.Badges[spec.Name] = ResourceState{ID: id, IconHash: iconHash}

	return nil
}

// resolveID looks a resource up by name in the state file first, then in the
// remote listing.
func (e *Engine) resolveID(states map[string]ResourceState, name string, remote map[string]int64) (int64, bool) {
	if prior, ok := states[name]; ok && prior.ID != 0 {
		return prior.ID, true
	}

	if id, ok := remote[name]; ok {
		return id, true
	}

	return 0, false
}

// ensureIcon returns the asset ID backing the given icon file, uploading it
// only when its SHA-256 differs from the hash recorded by a prior run.
func (e *Engine) ensureIcon(ctx context.Context, icon string, prior *ResourceState) (int64, string, error) {
	content, name, hash, err := e.readIcon(icon)
	if err != nil {
		return 0, "", err
	}

	if prior != nil && prior.IconHash == hash && prior.IconAssetID != 0 {
		return prior.IconAssetID, hash, nil
	}

	if e.dryRun {
		e.logger.Info("would upload icon", map[string]interface{}{"file": icon})

		return 0, hash, nil
	}

	e.logger.Info("uploading icon", map[string]interface{}{"file": icon})

	creator := e.project.Creator
	if creator.Type == "" {
		creator.Type = rbxcloud.CreatorTypeUser
	}

	displayName := strings.TrimSuffix(name, filepath.Ext(name))

	assetID, err := e.client.Assets().Upload(ctx, &rbxcloud.AssetUploadRequest{
		AssetType:   "Image",
		DisplayName: displayName,
		CreatorType: creator.Type,
		CreatorID:   creator.ID,
	}, content, name)
	if err != nil {
		return 0, "", err
	}

	id, err := strconv.ParseInt(assetID, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("unexpected asset ID %q: %w", assetID, err)
	}

	return id, hash, nil
}

// readIcon loads an icon file relative to the assets directory and returns
// its content, base name, and SHA-256 hex digest.
func (e *Engine) readIcon(icon string) ([]byte, string, string, error) {
	path := icon
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.root, e.project.AssetsDir, icon)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", "", fmt.Errorf("%w: %s", constants.ErrIconFileNotFound, icon)
		}

		return nil, "", "", fmt.Errorf("failed to read icon file: %w", err)
	}

	digest := sha256.Sum256(content)

	return content, filepath.Base(path), hex.EncodeToString(digest[:]), nil
}

func priorState(state ResourceState, ok bool) *ResourceState {
	if !ok {
		return nil
	}

	return &state
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}

	return *v
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}
