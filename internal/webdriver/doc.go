// Package webdriver implements the page interfaces on top of a selenium
// WebDriver session and manages the geckodriver process that serves it.
package webdriver
