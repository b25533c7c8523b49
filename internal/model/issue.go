package model

import "strings"

// DevFactory classifies whether an issue's root cause is software or
// physical production.
type DevFactory string

// DevFactory values.
const (
	DevFactoryDev     DevFactory = "DEV"
	DevFactoryFactory DevFactory = "FACTORY"
	DevFactoryNone    DevFactory = ""
)

// CategoryTag groups issues by defect domain.
type CategoryTag string

// CategoryTag values.
const (
	CategoryCopy      CategoryTag = "COPY"
	CategoryColor     CategoryTag = "COLOR"
	CategoryCapture   CategoryTag = "CAPTURE"
	CategoryArtifact  CategoryTag = "ARTIFACT"
	CategoryTagging   CategoryTag = "TAGGING"
	CategoryBBox      CategoryTag = "BBOX"
	CategoryDims      CategoryTag = "DIMS"
	CategoryBlueprint CategoryTag = "BLUEPRINT"
	CategoryNone      CategoryTag = ""
)

// CategoryTags lists the non-empty category tags in display order.
func CategoryTags() []CategoryTag {
	return []CategoryTag{
		CategoryCopy, CategoryColor, CategoryCapture, CategoryArtifact,
		CategoryTagging, CategoryBBox, CategoryDims, CategoryBlueprint,
	}
}

// IssueMetadata carries the classification tags for one issue label.
// Comment is free text shown in exports; the aggregation math ignores it.
type IssueMetadata struct {
	DevFactory DevFactory
	Category   CategoryTag
	Comment    string
}

// Uncategorized is the sentinel label for tickets no rule matched.
const Uncategorized = "Uncategorized"

// allIssues is the fixed label set, Uncategorized last.
var allIssues = []string{
	"Action video edit",
	"Action video framing",
	"BBOX issue",
	"Bad close up sequence",
	"Bad close up sequence - bad framing",
	"Bad close up sequence - repetitive edits",
	"Bad copy",
	"Bad label - framing",
	"Bad label - set up",
	"Bad label artifact",
	"Bad unbox artifact",
	"Black frames in video",
	"Blurry/out of focus video",
	"Color correction - Action shot",
	"Color correction - other",
	"Color correction - transparent product",
	"Color correction - white product",
	"Damage/dirty plate",
	"Damaged product",
	"Date code/LOT number shown",
	"Dimensions alignment",
	"Dimensions - mixed values",
	"Dimensions using a set shot",
	"Dimensions/product name mismatch",
	"Feature crop",
	"Feature not matching copy",
	"Inconsistent color",
	"Incorrect dimension values",
	"Missing dimension values",
	"Missing navigation item",
	"Missing set in intro/360",
	"New issue",
	"Off centered / Off axis",
	"PDP mismatch",
	"Reflections on product",
	"Repetitive copy",
	"Repetitive features",
	"UI obstruction",
	"Un-seamless 360 loop",
	"Visible stage / equipment",
	"Visual glitches",
	Uncategorized,
}

// defaultMetadata maps every fixed label to its classification tags.
var defaultMetadata = map[string]IssueMetadata{
	"Action video edit":                        {DevFactory: DevFactoryFactory, Category: CategoryTagging},
	"Action video framing":                     {DevFactory: DevFactoryFactory, Category: CategoryTagging},
	"BBOX issue":                               {DevFactory: DevFactoryDev, Category: CategoryBBox},
	"Bad close up sequence":                    {DevFactory: DevFactoryFactory, Category: CategoryTagging},
	"Bad close up sequence - bad framing":      {DevFactory: DevFactoryFactory, Category: CategoryTagging},
	"Bad close up sequence - repetitive edits": {DevFactory: DevFactoryFactory, Category: CategoryTagging},
	"Bad copy":                                 {DevFactory: DevFactoryDev, Category: CategoryCopy},
	"Bad label - framing":                      {DevFactory: DevFactoryFactory, Category: CategoryTagging},
	"Bad label - set up":                       {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"Bad label artifact":                       {DevFactory: DevFactoryDev, Category: CategoryArtifact},
	"Bad unbox artifact":                       {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"Black frames in video":                    {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"Blurry/out of focus video":                {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"Color correction - Action shot":           {DevFactory: DevFactoryDev, Category: CategoryColor},
	"Color correction - other":                 {DevFactory: DevFactoryDev, Category: CategoryColor},
	"Color correction - transparent product":   {DevFactory: DevFactoryDev, Category: CategoryColor},
	"Color correction - white product":         {DevFactory: DevFactoryDev, Category: CategoryColor},
	"Damage/dirty plate":                       {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"Damaged product":                          {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"Date code/LOT number shown":               {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"Dimensions alignment":                     {DevFactory: DevFactoryDev, Category: CategoryArtifact},
	"Dimensions - mixed values":                {DevFactory: DevFactoryFactory, Category: CategoryDims},
	"Dimensions using a set shot":              {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"Dimensions/product name mismatch":         {DevFactory: DevFactoryFactory, Category: CategoryDims},
	"Feature crop":                             {DevFactory: DevFactoryFactory, Category: CategoryTagging},
	"Feature not matching copy":                {DevFactory: DevFactoryDev, Category: CategoryCopy},
	"Inconsistent color":                       {DevFactory: DevFactoryDev, Category: CategoryColor},
	"Incorrect dimension values":               {DevFactory: DevFactoryFactory, Category: CategoryDims},
	"Missing dimension values":                 {DevFactory: DevFactoryFactory, Category: CategoryDims},
	"Missing navigation item":                  {DevFactory: DevFactoryDev, Category: CategoryBlueprint},
	"Missing set in intro/360":                 {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"New issue":                                {},
	"Off centered / Off axis":                  {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"PDP mismatch":                             {},
	"Reflections on product":                   {DevFactory: DevFactoryFactory, Category: CategoryCapture},
	"Repetitive copy":                          {DevFactory: DevFactoryDev, Category: CategoryCopy},
	"Repetitive features":                      {DevFactory: DevFactoryDev, Category: CategoryBlueprint},
	"UI obstruction":                           {DevFactory: DevFactoryDev, Category: CategoryArtifact},
	"Un-seamless 360 loop":                     {DevFactory: DevFactoryDev, Category: CategoryArtifact},
	"Visible stage / equipment":                {DevFactory: DevFactoryDev, Category: CategoryBBox},
	"Visual glitches":                          {DevFactory: DevFactoryDev, Category: CategoryArtifact},
	Uncategorized:                              {},
}

// defaultComments carries the reviewer-facing description of each label,
// taken from the QC bug-category reference document. Shown in exports;
// labels without an entry simply have no description.
var defaultComments = map[string]string{
	"Action video edit":                        "When the action video demonstration has a poor edit or demonstration.",
	"Action video framing":                     "When the action video demonstration is poorly positioned in frame / main part of the demonstration is cropped, zoomed in or positioned poorly.",
	"BBOX issue":                               "When there are white obstructions on the product (caused by bad calculation of the bounding box).",
	"Bad close up sequence":                    "Any other issue with the Close Up Sequence that doesn't fit to any of the other 2 categories above",
	"Bad close up sequence - bad framing":      "When the crop/zoom in the Close Up Sequence looks bad.",
	"Bad close up sequence - repetitive edits": "When the close ups edits in the Close Up Sequence are too repetitive.",
	"Bad copy":                                 "Any issue with bad capitalization, special characters or illogical copy.",
	"Bad label - framing":                      "When the Label shot gets too cropped or is too zoomed out and unreadable.",
	"Bad label - set up":                       "When the label shot has a problematic setup that creates a bad label artifact.",
	"Bad label artifact":                       "Any issues with label artifact that doesn't fit into any of the 2 categories above.",
	"Bad unbox artifact":                       "Any issues with unbox artifact, including when the unbox artifact has 2 setup that are too similar",
	"Black frames in video":                    "When the video blacks out completely and includes black frames.",
	"Blurry/out of focus video":                "When the video is too blurry or out of focus",
	"Color correction - Action shot":           "When only the action shot has bad color correction (very dark and saturated, or very light and milky, or off/tinted colors), or action shot has a completely separate color correction issue then the other shots (rare)",
	"Color correction - other":                 "Over type of color correction issues- colorful products, saturated, very dark, etc.",
	"Color correction - transparent product":   "When the product is transparent. May result in product blending into background, or rainbow colored visual glitches or other glitches. The focus here is on color of the product itself, not the color correction.",
	"Color correction - white product":         "When the product is white or very bright, and the color comes out bad. It may be that the product blends into the background, or it has a very milky look, or it might create a lot of visual glitches and a very dark color correction. The focus here is on color of the product itself, not the color correction.",
	"Damage/dirty plate":                       "When there are distracting dirty/damages on plate",
	"Damaged product":                          "When there's significant distracting damage to the product or product is dirty.",
	"Date code/LOT number shown":               "The expiration date or the LOT numbers are visible on the product. Either on the product itself, or on the label setup in the label shot.",
	"Dimensions alignment":                     "When the dimension artifact composition is not well aligned with the product.",
	"Dimensions - mixed values":                "To be used when the dimensions seem correct but are swapped between the axises.",
	"Dimensions using a set shot":              "When the dimensions artifact is using a set shot or a multipackage",
	"Dimensions/product name mismatch":         "When the dimensions artifact has values that are not matching product name in more then 1inch difference.",
	"Feature crop":                             "When the video for a feature is badly cropped, positioned, framed. Too zoomed in or too zoomed out or out of frame and looks bad.",
	"Feature not matching copy":                "When a feature copy mentions a specific element of the product that is not visible in the feature video.",
	"Inconsistent color":                       "When different shots in the experience has passable color correction, but it's not consistent across the experience.",
	"Incorrect dimension values":               "When the dimension artifact has clearly wrong or swapped dimension values.",
	"Missing dimension values":                 "When dimensions artifact shows 0x0x0",
	"Missing navigation item":                  "When there's an issue with the structure and a navigation item is missing, like no \"Features\" button.",
	"Missing set in intro/360":                 "When the item is a set/multipack and it is not showed properly as such in the intro/360 part.",
	"New issue":                                "Any issue that doesn't fit into any existing category. Please be as specific as possible in the description so we can identify and understand the issue.",
	"Off centered / Off axis":                  "When item is placed off center or off axis.",
	"PDP mismatch":                             "When the product in video is different then product in PDP",
	"Reflections on product":                   "When there are significant distracting reflections on the product.",
	"Repetitive copy":                          "When copy across different features is too repetitive.",
	"Repetitive features":                      "When the video across different features is too repetitive.",
	"UI obstruction":                           "When the UI text box obscures important parts of the product.",
	"Un-seamless 360 loop":                     "When the 360 doesn't loop seamlessly.",
	"Visible stage / equipment":                "When studio equipment or the rotating plate is visible. Should open ticket for visible plate only when it's very bad. Slightly visible is passable",
	"Visual glitches":                          "When there are significant visible visual glitches in video",
}

// flaggableIssues are the labels eligible for the manual QC-review queue.
var flaggableIssues = []string{
	"Blurry/out of focus video",
	"Damage/dirty plate",
	"Damaged product",
	"Date code/LOT number shown",
	"Off centered / Off axis",
	"Reflections on product",
}

// AllIssues returns a copy of the fixed label set, Uncategorized included.
func AllIssues() []string {
	out := make([]string, len(allIssues))
	copy(out, allIssues)
	return out
}

// FlaggableIssues returns a copy of the labels eligible for flagging.
func FlaggableIssues() []string {
	out := make([]string, len(flaggableIssues))
	copy(out, flaggableIssues)
	return out
}

// IsFlaggable reports whether the label takes part in the flagging workflow.
func IsFlaggable(issue string) bool {
	for _, f := range flaggableIssues {
		if f == issue {
			return true
		}
	}
	return false
}

// IssueConfig is an immutable snapshot of the label taxonomy: the label set
// the classifier matches names against plus the metadata for each label.
// Operators curate labels at runtime, so the snapshot is injected into the
// classifier and aggregator rather than read from package state.
type IssueConfig struct {
	meta      map[string]IssueMetadata
	canonical map[string]string // lowercase name -> canonical name
	labels    []string
}

// NewIssueConfig builds a snapshot from a label list and metadata overrides.
// A nil label list means the fixed default set. Overrides win over the static
// table; labels absent from both get empty metadata.
func NewIssueConfig(labels []string, overrides map[string]IssueMetadata) *IssueConfig {
	if labels == nil {
		labels = allIssues
	}
	cfg := &IssueConfig{
		meta:      make(map[string]IssueMetadata, len(labels)),
		canonical: make(map[string]string, len(labels)),
		labels:    make([]string, 0, len(labels)),
	}
	for _, name := range labels {
		if name == "" {
			continue
		}
		if _, dup := cfg.canonical[strings.ToLower(name)]; dup {
			continue
		}
		cfg.labels = append(cfg.labels, name)
		cfg.canonical[strings.ToLower(name)] = name

		md := defaultMetadata[name]
		if md.Comment == "" {
			md.Comment = defaultComments[name]
		}
		if o, ok := overrides[name]; ok {
			md = o
		}
		cfg.meta[name] = md
	}
	return cfg
}

// DefaultIssueConfig returns the snapshot of the fixed label set with the
// static metadata table.
func DefaultIssueConfig() *IssueConfig {
	return NewIssueConfig(nil, nil)
}

// Labels returns the label set in configuration order.
func (c *IssueConfig) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Canonical resolves a ticket name to a label by exact case-insensitive
// match after trimming, returning the canonically cased label name.
func (c *IssueConfig) Canonical(name string) (string, bool) {
	label, ok := c.canonical[strings.ToLower(strings.TrimSpace(name))]
	return label, ok
}

// Metadata returns the metadata for a label. Unknown labels get the empty
// metadata so custom labels work before an operator configures them.
func (c *IssueConfig) Metadata(issue string) IssueMetadata {
	return c.meta[issue]
}
