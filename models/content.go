package models

import "time"

type PostStatus string

const (
	PostPublished PostStatus = "published"
	PostDraft     PostStatus = "draft"
)

func (s PostStatus) Valid() bool {
	return s == PostPublished || s == PostDraft
}

type BlogPost struct {
	ID        string     `json:"id" bson:"id" firestore:"-"`
	Title     string     `json:"title" bson:"title" firestore:"title"`
	Slug      string     `json:"slug" bson:"slug" firestore:"slug"`
	Content   string     `json:"content" bson:"content" firestore:"content"`
	ImageURL  string     `json:"imageUrl" bson:"imageUrl" firestore:"imageUrl"`
	Status    PostStatus `json:"status" bson:"status" firestore:"status"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

func (p *BlogPost) SetID(id string) { p.ID = id }
func (p *BlogPost) Created() time.Time { return p.CreatedAt }
func (p *BlogPost) SetCreatedAt(at time.Time) { p.CreatedAt = at }

type Testimonial struct {
	ID           string    `json:"id" bson:"id" firestore:"-"`
	CustomerName string    `json:"customerName" bson:"customerName" firestore:"customerName"`
	Quote        string    `json:"quote" bson:"quote" firestore:"quote"`
	Rating       int       `json:"rating,omitempty" bson:"rating,omitempty" firestore:"rating,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

func (t *Testimonial) SetID(id string) { t.ID = id }
func (t *Testimonial) Created() time.Time { return t.CreatedAt }
func (t *Testimonial) SetCreatedAt(at time.Time) { t.CreatedAt = at }

type FAQ struct {
	ID        string    `json:"id" bson:"id" firestore:"-"`
	Icon      string    `json:"icon,omitempty" bson:"icon,omitempty" firestore:"icon,omitempty"`
	Question  string    `json:"question" bson:"question" firestore:"question"`
	Answer    string    `json:"answer" bson:"answer" firestore:"answer"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

func (f *FAQ) SetID(id string) { f.ID = id }
func (f *FAQ) Created() time.Time { return f.CreatedAt }
func (f *FAQ) SetCreatedAt(at time.Time) { f.CreatedAt = at }

// WhyUsPoint is one selling point shown in the landing page "why us" section.
type WhyUsPoint struct {
	ID          string    `json:"id" bson:"id" firestore:"-"`
	Icon        string    `json:"icon" bson:"icon" firestore:"icon"`
	Title       string    `json:"title" bson:"title" firestore:"title"`
	Description string    `json:"description" bson:"description" firestore:"description"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

func (w *WhyUsPoint) SetID(id string) { w.ID = id }
func (w *WhyUsPoint) Created() time.Time { return w.CreatedAt }
func (w *WhyUsPoint) SetCreatedAt(at time.Time) { w.CreatedAt = at }

type Destination struct {
	ID          string    `json:"id" bson:"id" firestore:"-"`
	Name        string    `json:"name" bson:"name" firestore:"name"`
	Description string    `json:"description" bson:"description" firestore:"description"`
	ImageURL    string    `json:"imageUrl" bson:"imageUrl" firestore:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

func (d *Destination) SetID(id string) { d.ID = id }
func (d *Destination) Created() time.Time { return d.CreatedAt }
func (d *Destination) SetCreatedAt(at time.Time) { d.CreatedAt = at }
