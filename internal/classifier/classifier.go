package classifier

import (
	"strings"
)

// Classifier decides whether a message belongs to the therapy/mental-health
// domain. Matching is plain case-insensitive substring membership against a
// fixed vocabulary, so "not" matches inside "nothing". The gate is permissive
// on purpose; borderline messages should reach the model.
type Classifier struct {
	keywords []string
}

// NewClassifier creates a classifier with the default therapy vocabulary.
func NewClassifier() *Classifier {
	return &Classifier{keywords: therapyKeywords}
}

// IsInDomain reports whether any vocabulary entry occurs in the message.
func (c *Classifier) IsInDomain(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// therapyKeywords is the in-domain vocabulary. Entries must be lowercase.
var therapyKeywords = []string{
	// Professions and modalities
	"therapy", "therapist", "therapeutic", "counseling", "counselor", "psychotherapy",
	"mental health", "mental illness", "mental wellness", "psychologist", "psychiatrist",
	"psychiatric", "psychology", "wellbeing", "well-being", "emotional health", "emotional wellness",

	// Conditions
	"depression", "depressed", "depressing", "anxiety", "anxious", "stress", "stressed", "trauma", "ptsd",
	"post-traumatic", "bipolar", "schizophrenia", "ocd", "obsessive-compulsive", "adhd", "attention deficit",
	"borderline", "bpd", "eating disorder", "anorexia", "bulimia", "binge eating", "panic disorder",
	"social anxiety", "generalized anxiety", "phobia", "insomnia", "sleep disorder", "mood disorder",
	"personality disorder", "dissociation", "derealization", "depersonalization", "hypomania", "mania",
	"psychosis", "delusion", "hallucination",

	// Emotional states
	"sad", "sadness", "overwhelmed",
	"angry", "anger", "frustrated", "lonely", "loneliness", "isolated", "isolation", "guilt", "guilty",
	"shame", "ashamed", "fear", "fearful", "scared", "worried", "not", "worry", "hopeless", "helpless", "despair",
	"grief", "grieving", "mourning", "loss", "jealous", "jealousy", "envy", "irritable", "irritation",
	"nervous", "tense", "restless", "empty", "numb", "feeling", "fine", "hurt", "pain", "emotional pain", "heartbroken",
	"betrayed", "trust issues",

	// Treatment approaches
	"cbt", "cognitive behavioral therapy", "dbt", "dialectical behavior therapy",
	"emdr", "eye movement", "mindfulness", "meditation", "psychodynamic", "humanistic", "gestalt",
	"family therapy", "group therapy", "art therapy", "music therapy", "play therapy", "exposure therapy",
	"narrative therapy", "solution-focused", "acceptance and commitment", "act therapy", "behavioral therapy",
	"interpersonal therapy", "ipt", "trauma-focused", "somatic", "body-based", "grounding",

	// Coping and self-care
	"breathing exercises", "relaxation techniques", "coping", "self-care", "self-compassion", "self-love",
	"self-acceptance", "resilience", "self-esteem", "confidence", "motivation", "self-worth", "self-image",
	"body image", "journaling", "gratitude", "positive thinking", "affirmations", "visualization",
	"stress management", "time management", "problem-solving", "emotional regulation", "self-soothing",
	"distraction", "self-awareness", "self-reflection", "boundaries", "assertiveness", "communication skills",
	"conflict resolution",

	// Lifestyle
	"sleep", "sleep hygiene", "diet", "nutrition", "exercise", "physical activity",
	"yoga", "fitness", "health", "healthy habits", "routine", "structure", "balance", "work-life balance",
	"hydration", "caffeine", "alcohol", "substance use", "smoking", "screen time", "social media",
	"digital detox",

	// Relationships
	"relationship", "relationships", "family", "feelings", "family issues", "parenting", "marriage",
	"divorce", "breakup", "separation", "friendship", "friends", "social support", "support system",
	"community", "connection", "intimacy", "attachment", "codependency", "abandonment", "rejection",
	"bullying", "harassment", "abuse", "emotional abuse", "physical abuse", "sexual abuse", "neglect",
	"toxic relationship", "gaslighting", "manipulation", "trust", "betrayal", "infidelity", "cheating",
	"loneliness in relationships",

	// Addiction and recovery
	"addiction", "substance abuse", "alcoholism", "drug use", "recovery",
	"sobriety", "relapse", "withdrawal", "detox", "rehab", "rehabilitation", "12-step", "aa", "na",
	"gambling", "pornography", "internet addiction", "gaming addiction", "shopping addiction", "overeating",
	"compulsion",

	// Crisis
	"suicidal", "suicide", "self-harm", "cutting", "crisis", "emergency", "hotline", "helpline",
	"panic attack", "breakdown", "meltdown", "overdose", "danger", "safety plan", "urgent", "immediate help",

	// Positive states and growth
	"happiness", "joy", "peace", "calm", "relaxation", "contentment", "fulfillment", "purpose", "meaning",
	"hope", "optimism", "positivity", "growth", "personal growth", "self-improvement", "self-development",
	"healing", "closure", "forgiveness", "letting go", "acceptance", "inner peace", "harmony",
	"spirituality", "faith", "beliefs", "values", "identity", "self-discovery", "authenticity",

	// Work and life transitions
	"burnout", "work stress", "job stress", "career", "workplace", "productivity", "procrastination", "overwork",
	"job loss", "unemployment", "not feeling well", "performance anxiety", "imposter syndrome", "perfectionism",
	"life transition", "change", "adjustment", "midlife crisis", "quarter-life crisis", "aging", "retirement",
	"pregnancy", "postpartum", "menopause", "chronic illness", "disability", "caregiving", "loss of loved one",
	"moving", "relocation", "culture shock", "immigration", "acculturation", "identity crisis",

	// Support and cognition
	"empathy", "compassion", "validation", "support", "encouragement", "inspiration", "mental clarity",
	"focus", "concentration", "memory", "brain fog", "decision-making", "overthinking", "rumination",
	"intrusive thoughts", "flashbacks", "nightmares", "triggers", "trauma response", "fight or flight",
	"freeze response", "fawn response", "hypervigilance", "dissociative", "numbing",
	"emotional intelligence", "eq", "self-regulation", "social skills", "interpersonal skills",
}
