package models

// LandingPage is the singleton settings/landingPage document. Footer fields live in the same
// document and are edited from a separate screen.
type LandingPage struct {
	SiteName        string   `json:"siteName" bson:"siteName" firestore:"siteName"`
	HeroTitle       string   `json:"heroTitle" bson:"heroTitle" firestore:"heroTitle"`
	HeroSubtitle    string   `json:"heroSubtitle" bson:"heroSubtitle" firestore:"heroSubtitle"`
	LogoURL         string   `json:"logoUrl" bson:"logoUrl" firestore:"logoUrl"`
	HeroImages      []string `json:"heroImages" bson:"heroImages" firestore:"heroImages"`
	SocialInstagram string   `json:"socialInstagram" bson:"socialInstagram" firestore:"socialInstagram"`
	SocialFacebook  string   `json:"socialFacebook" bson:"socialFacebook" firestore:"socialFacebook"`
	SocialTiktok    string   `json:"socialTiktok" bson:"socialTiktok" firestore:"socialTiktok"`
	ContactAddress  string   `json:"contactAddress" bson:"contactAddress" firestore:"contactAddress"`
	ContactPhone    string   `json:"contactPhone" bson:"contactPhone" firestore:"contactPhone"`
	ContactEmail    string   `json:"contactEmail" bson:"contactEmail" firestore:"contactEmail"`
	AboutText       string   `json:"aboutText" bson:"aboutText" firestore:"aboutText"`

	FooterSettings `bson:",inline"`
}

// FooterSettings is the footer part of the landing page document.
type FooterSettings struct {
	CopyrightText         string `json:"copyrightText" bson:"copyrightText" firestore:"copyrightText"`
	FooterDescription     string `json:"footerDescription" bson:"footerDescription" firestore:"footerDescription"`
	Latitude              string `json:"latitude" bson:"latitude" firestore:"latitude"`
	Longitude             string `json:"longitude" bson:"longitude" firestore:"longitude"`
	GoogleMapsLink        string `json:"googleMapsLink" bson:"googleMapsLink" firestore:"googleMapsLink"`
	FooterSocialInstagram string `json:"footerSocialInstagram" bson:"footerSocialInstagram" firestore:"footerSocialInstagram"`
	FooterSocialFacebook  string `json:"footerSocialFacebook" bson:"footerSocialFacebook" firestore:"footerSocialFacebook"`
	FooterSocialTiktok    string `json:"footerSocialTiktok" bson:"footerSocialTiktok" firestore:"footerSocialTiktok"`
	FooterSocialYoutube   string `json:"footerSocialYoutube" bson:"footerSocialYoutube" firestore:"footerSocialYoutube"`
}

// LandingFields returns the non-footer fields as a merge map.
func (l LandingPage) LandingFields() map[string]interface{} {
	return map[string]interface{}{
		"siteName":        l.SiteName,
		"heroTitle":       l.HeroTitle,
		"heroSubtitle":    l.HeroSubtitle,
		"logoUrl":         l.LogoURL,
		"heroImages":      nonNil(l.HeroImages),
		"socialInstagram": l.SocialInstagram,
		"socialFacebook":  l.SocialFacebook,
		"socialTiktok":    l.SocialTiktok,
		"contactAddress":  l.ContactAddress,
		"contactPhone":    l.ContactPhone,
		"contactEmail":    l.ContactEmail,
		"aboutText":       l.AboutText,
	}
}

// Fields returns the footer as a merge map.
func (f FooterSettings) Fields() map[string]interface{} {
	return map[string]interface{}{
		"copyrightText":         f.CopyrightText,
		"footerDescription":     f.FooterDescription,
		"latitude":              f.Latitude,
		"longitude":             f.Longitude,
		"googleMapsLink":        f.GoogleMapsLink,
		"footerSocialInstagram": f.FooterSocialInstagram,
		"footerSocialFacebook":  f.FooterSocialFacebook,
		"footerSocialTiktok":    f.FooterSocialTiktok,
		"footerSocialYoutube":   f.FooterSocialYoutube,
	}
}

// Gallery is the singleton gallery/main document.
type Gallery struct {
	ImageURLs []string `json:"imageUrls" bson:"imageUrls" firestore:"imageUrls"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// PublicLanding is everything the public home page renders.
type PublicLanding struct {
	Settings     LandingPage   `json:"settings"`
	Packages     []TripPackage `json:"packages"`
	WhyUs        []WhyUsPoint  `json:"whyUs"`
	Articles     []BlogPost    `json:"articles"`
	Gallery      []string      `json:"gallery"`
	Testimonials []Testimonial `json:"testimonials"`
	FAQs         []FAQ         `json:"faqs"`
}
