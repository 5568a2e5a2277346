package services

import "github.com/rkuzmin/railsprep/internal/models"

const (
	demoUsername = "demo"
	demoPassword = "railsprep-demo"
)

// seedQuestions is the built-in Rails interview question set, loaded once
// into an empty catalog. Order matters: the list view paginates in
// insertion order.
var seedQuestions = []models.Question{
	{
		Question:   "What is Ruby on Rails?",
		Difficulty: models.DifficultyEasy,
		Category:   "Basics",
		Answer:     "Ruby on Rails (Rails) is an open-source web application framework written in Ruby that follows the MVC (Model-View-Controller) architectural pattern. It emphasizes Convention over Configuration and DRY (Don't Repeat Yourself) principles to increase developer productivity.",
	},
	{
		Question:   "Explain MVC architecture in Rails",
		Difficulty: models.DifficultyEasy,
		Category:   "Architecture",
		Answer:     "MVC stands for Model-View-Controller, an architectural pattern used in Rails. Models handle data and business logic, Views handle the user interface and presentation, and Controllers handle incoming requests, interact with models, and render views.",
	},
	{
		Question:   "What is the difference between render and redirect_to in Rails?",
		Difficulty: models.DifficultyEasy,
		Category:   "Controllers",
		Answer:     "render displays a view without making a new request, preserving the current request's variables. redirect_to sends a new HTTP request to a different URL, effectively starting a new request/response cycle.",
	},
	{
		Question:   "What are migrations in Rails?",
		Difficulty: models.DifficultyEasy,
		Category:   "Database",
		Answer:     "Migrations are Ruby classes that create or modify database tables in a structured and organized way. They allow for version control of database schema changes and make it easy to apply or roll back changes.",
	},
	{
		Question:   "Explain the Rails request lifecycle",
		Difficulty: models.DifficultyEasy,
		Category:   "Architecture",
		Answer:     "1) Browser sends request to server. 2) Router determines which controller and action to use. 3) Controller processes the request, interacts with models if needed. 4) Controller renders a view or redirects. 5) Server sends response back to browser.",
	},
	{
		Question:   "What is bundler and what problem does it solve?",
		Difficulty: models.DifficultyEasy,
		Category:   "Gems",
		Answer:     "Bundler is a dependency manager for Ruby projects. It resolves, installs, and tracks gem dependencies, ensuring the same versions are used across all environments, solving the 'dependency hell' problem.",
	},
	{
		Question:   "How does routing work in Rails?",
		Difficulty: models.DifficultyEasy,
		Category:   "Routing",
		Answer:     "Routing in Rails connects incoming requests with controllers and actions based on URL patterns defined in the config/routes.rb file. This allows for clean URL management within applications, mapping specific URLs to the appropriate controller actions.",
	},
	{
		Question:   "What is the difference between String and Symbol in Ruby?",
		Difficulty: models.DifficultyEasy,
		Category:   "Ruby",
		Answer:     "Strings are mutable sequences of characters while Symbols are immutable, lightweight objects often used as identifiers. Symbols are prefixed with a colon (:) and are more memory-efficient for keys in hashes because identical symbols refer to the same object in memory.",
	},
	{
		Question:   "Explain the different types of associations in Rails",
		Difficulty: models.DifficultyMedium,
		Category:   "ActiveRecord",
		Answer:     "Rails supports has_one, has_many, belongs_to, has_many :through, has_one :through, and has_and_belongs_to_many associations. These define relationships between models: one-to-one, one-to-many, and many-to-many connections.",
	},
	{
		Question:   "What are scopes in ActiveRecord and how do you use them?",
		Difficulty: models.DifficultyMedium,
		Category:   "ActiveRecord",
		Answer:     "Scopes are reusable query fragments defined in models using the 'scope' method. Example:\n\n```ruby\nscope :active, -> { where(active: true) }\n```\n\nThey help in creating readable, reusable query logic that can be chained.",
	},
	{
		Question:   "Explain ActiveRecord callbacks and name a few",
		Difficulty: models.DifficultyMedium,
		Category:   "ActiveRecord",
		Answer:     "Callbacks are methods triggered at certain moments in an object's lifecycle. Examples include before_save, after_create, after_destroy, before_validation. They allow executing code before or after changes to an object's state.",
	},
	{
		Question:   "What are Strong Parameters in Rails?",
		Difficulty: models.DifficultyMedium,
		Category:   "Controllers",
		Answer:     "Strong Parameters provide a way to whitelist and require specific parameters before they can be used for mass assignment, helping prevent unauthorized attribute setting. They're typically implemented using 'require' and 'permit' methods in controllers.",
	},
	{
		Question:   "Explain the difference between eager loading and lazy loading in Rails",
		Difficulty: models.DifficultyMedium,
		Category:   "ActiveRecord",
		Answer:     "Eager loading (using includes, preload, or eager_load) loads associated records in advance, reducing N+1 query problems. Lazy loading fetches associated records only when they're accessed, which can lead to performance issues if not managed properly.",
	},
	{
		Question:   "What is Hotwire and how does it differ from traditional Rails approaches?",
		Difficulty: models.DifficultyMedium,
		Category:   "Frontend",
		Answer:     "Hotwire (HTML Over The Wire) is a technique for building interactive web applications without much JavaScript. It consists of Turbo (enhanced Turbolinks) and Stimulus (a lightweight JS framework). It sends HTML instead of JSON and updates pages via DOM merging.",
	},
	{
		Question:   "How do you manage database transactions in Rails?",
		Difficulty: models.DifficultyMedium,
		Category:   "Database",
		Answer:     "Database transactions in Rails are managed using ActiveRecord::Base.transaction blocks. If any operation within the block raises an exception, all changes are rolled back, ensuring atomicity. Example:\n\n```ruby\nActiveRecord::Base.transaction do\n  user.save!\n  order.save!\nend\n```",
	},
	{
		Question:   "How do you implement authentication in Rails?",
		Difficulty: models.DifficultyMedium,
		Category:   "Security",
		Answer:     "Authentication in Rails can be implemented using libraries like Devise or has_secure_password. Devise offers full-featured authentication with various modules, while has_secure_password provides basic password encryption and validation using bcrypt.",
	},
	{
		Question:   "What is Rack in Ruby and how does Rails use it?",
		Difficulty: models.DifficultyHard,
		Category:   "Architecture",
		Answer:     "Rack is a modular interface between web servers and Ruby web frameworks. Rails is built on Rack, which allows middleware to be stacked and provides a common interface. Each middleware component processes requests and responses in sequence.",
	},
	{
		Question:   "Explain memoization and how it's used in Rails",
		Difficulty: models.DifficultyHard,
		Category:   "Performance",
		Answer:     "Memoization caches the result of a method call to avoid repeated expensive operations. In Rails, it's often implemented using the ||= operator:\n\n```ruby\n@users ||= User.all\n```\n\nThis assigns to @users only if it's nil or false, otherwise returns its current value.",
	},
	{
		Question:   "What are N+1 queries and how do you avoid them?",
		Difficulty: models.DifficultyHard,
		Category:   "Performance",
		Answer:     "N+1 queries occur when you fetch N records and then make one additional query for each record (N+1 total). Avoid them using eager loading with includes, preload, or eager_load, or using the bullet gem to detect them in development.",
	},
	{
		Question:   "Explain background job processing in Rails and compare different solutions",
		Difficulty: models.DifficultyHard,
		Category:   "Architecture",
		Answer:     "Background jobs process tasks asynchronously outside the request cycle. Rails has Active Job as an abstraction layer. Popular backends include Sidekiq (Redis-based, threaded), DelayedJob (database-backed), Resque (Redis-based, process-based), and Good Job (Postgres-based).",
	},
	{
		Question:   "Explain the differences between STI and polymorphic associations",
		Difficulty: models.DifficultyHard,
		Category:   "ActiveRecord",
		Answer:     "Single Table Inheritance (STI) puts all subclasses in one table with a type column, sharing the same attributes. Polymorphic associations allow a model to belong to different models, using *_type and *_id columns. STI is about inheritance; polymorphic is about relationships.",
	},
	{
		Question:   "How does caching work in Rails? Explain different caching strategies",
		Difficulty: models.DifficultyHard,
		Category:   "Performance",
		Answer:     "Rails supports: 1) Page caching (full HTML pages), 2) Action caching (controller actions with filters), 3) Fragment caching (view partials), 4) Russian Doll caching (nested fragments), 5) Low-level caching (custom keys), and 6) HTTP caching (ETags, Last-Modified headers).",
	},
	{
		Question:   "Explain metaprogramming in Ruby and provide an example",
		Difficulty: models.DifficultyHard,
		Category:   "Ruby",
		Answer:     "Metaprogramming is writing code that writes or manipulates code at runtime. Examples include define_method for dynamically creating methods, method_missing for handling calls to undefined methods, and instance_eval for evaluating code in an object's context.",
	},
	{
		Question:   "How would you optimize a slow Rails application?",
		Difficulty: models.DifficultyHard,
		Category:   "Performance",
		Answer:     "To optimize a slow Rails app: 1) Profile with tools like rack-mini-profiler, 2) Optimize database queries (fix N+1, add indices), 3) Implement caching strategies, 4) Use background jobs for time-consuming tasks, 5) Optimize asset delivery, 6) Consider fragment caching for views, 7) Scale horizontally if needed.",
	},
}
