package words

import "math/rand"

// bank is the fixed vocabulary rounds draw from: common nouns, verbs and
// adjectives that are reasonable to sketch.
var bank = []string{
	// animals
	"cat", "dog", "elephant", "lion", "tiger", "bear", "rabbit", "mouse", "bird", "fish",
	"cow", "pig", "sheep", "horse", "chicken", "duck", "goose", "owl", "eagle", "shark",

	// objects
	"car", "house", "tree", "book", "phone", "computer", "chair", "table", "bed", "door",
	"window", "clock", "camera", "bicycle", "airplane", "boat", "train", "bus", "truck", "motorcycle",

	// food
	"pizza", "hamburger", "sandwich", "cake", "cookie", "apple", "banana", "orange", "grape", "strawberry",
	"bread", "cheese", "milk", "coffee", "tea", "soup", "salad", "ice cream", "chocolate", "candy",

	// activities
	"dancing", "singing", "reading", "writing", "drawing", "painting", "swimming", "running", "jumping", "sleeping",
	"cooking", "eating", "drinking", "laughing", "crying", "thinking", "talking", "listening", "watching", "playing",

	// places
	"beach", "mountain", "forest", "city", "school", "hospital", "restaurant", "store", "library", "park",
	"zoo", "museum", "theater", "church", "office", "kitchen", "bedroom", "bathroom", "garden", "farm",

	// weather & nature
	"sun", "moon", "star", "cloud", "rain", "snow", "wind", "fire", "water", "earth",
	"flower", "grass", "leaf", "rock", "sand", "ice", "rainbow", "lightning", "thunder", "storm",

	// body parts
	"head", "eye", "nose", "mouth", "ear", "hand", "foot", "leg", "arm", "finger",
	"toe", "hair", "tooth", "tongue", "chest", "back", "stomach", "knee", "elbow", "shoulder",

	// emotions
	"happy", "sad", "angry", "excited", "scared", "surprised", "confused", "worried", "proud", "embarrassed",
	"jealous", "nervous", "calm", "frustrated", "disappointed", "grateful", "hopeful", "lonely", "confident", "shy",
}

// Source hands out one word per call, uniformly at random. No
// repetition-avoidance is promised.
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

func (that *Source) NextWord() string {
	return bank[rand.Intn(len(bank))] //nolint: gosec // it's ok
}

// All returns the vocabulary, for callers that need to validate a word
// belongs to it.
func All() []string {
	return bank
}
